package models

// RAGStatus is the manually set health flag of a project.
type RAGStatus string

const (
	RAGNotStarted RAGStatus = "Not Started"
	RAGOnTrack    RAGStatus = "On Track"
	RAGAtRisk     RAGStatus = "At Risk"
	RAGDelayed    RAGStatus = "Delayed"
	RAGCompleted  RAGStatus = "Completed"
)

var RAGStatuses = []RAGStatus{RAGNotStarted, RAGOnTrack, RAGAtRisk, RAGDelayed, RAGCompleted}

func ParseRAGStatus(raw string) (RAGStatus, bool) { return parseEnum(RAGStatuses, raw) }

func CoerceRAGStatus(raw string) RAGStatus { return coerceEnum(RAGStatuses, raw, RAGNotStarted) }

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskComplete   TaskStatus = "Complete"
	TaskBlocked    TaskStatus = "Blocked"
)

var TaskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskComplete, TaskBlocked}

func ParseTaskStatus(raw string) (TaskStatus, bool) { return parseEnum(TaskStatuses, raw) }

func CoerceTaskStatus(raw string) TaskStatus { return coerceEnum(TaskStatuses, raw, TaskNotStarted) }

// Next returns the status that follows s in the status cycle, wrapping
// Blocked back to Not Started. Unknown values restart the cycle.
func (s TaskStatus) Next() TaskStatus {
	for i, v := range TaskStatuses {
		if v == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return TaskStatuses[0]
}

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityNormal   Priority = "Normal"
	PriorityLow      Priority = "Low"
)

var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}

func ParsePriority(raw string) (Priority, bool) { return parseEnum(Priorities, raw) }

func CoercePriority(raw string) Priority { return coerceEnum(Priorities, raw, PriorityNormal) }

type ResourceType string

const (
	ResourceLabour        ResourceType = "Labour"
	ResourceMaterial      ResourceType = "Material"
	ResourceEquipment     ResourceType = "Equipment"
	ResourceSubcontractor ResourceType = "Subcontractor"
)

var ResourceTypes = []ResourceType{ResourceLabour, ResourceMaterial, ResourceEquipment, ResourceSubcontractor}

func ParseResourceType(raw string) (ResourceType, bool) { return parseEnum(ResourceTypes, raw) }

func CoerceResourceType(raw string) ResourceType {
	return coerceEnum(ResourceTypes, raw, ResourceMaterial)
}

type ResourceStatus string

const (
	ResourcePlanned ResourceStatus = "Planned"
	ResourceOrdered ResourceStatus = "Ordered"
	ResourceOnSite  ResourceStatus = "On Site"
	ResourceUsed    ResourceStatus = "Used"
)

// ResourceStatuses is ordered along the delivery lifecycle.
var ResourceStatuses = []ResourceStatus{ResourcePlanned, ResourceOrdered, ResourceOnSite, ResourceUsed}

func ParseResourceStatus(raw string) (ResourceStatus, bool) { return parseEnum(ResourceStatuses, raw) }

func CoerceResourceStatus(raw string) ResourceStatus {
	return coerceEnum(ResourceStatuses, raw, ResourcePlanned)
}

// Deployed reports whether the resource has reached site.
func (s ResourceStatus) Deployed() bool {
	return s == ResourceOnSite || s == ResourceUsed
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

func ParseRiskLevel(raw string) (RiskLevel, bool) { return parseEnum(RiskLevels, raw) }

type RiskStatus string

const (
	RiskActive    RiskStatus = "Active"
	RiskMitigated RiskStatus = "Mitigated"
	RiskResolved  RiskStatus = "Resolved"
)

var RiskStatuses = []RiskStatus{RiskActive, RiskMitigated, RiskResolved}

func ParseRiskStatus(raw string) (RiskStatus, bool) { return parseEnum(RiskStatuses, raw) }

func parseEnum[E ~string](values []E, raw string) (E, bool) {
	for _, v := range values {
		if string(v) == raw {
			return v, true
		}
	}
	var zero E
	return zero, false
}

func coerceEnum[E ~string](values []E, raw string, fallback E) E {
	if v, ok := parseEnum(values, raw); ok {
		return v
	}
	return fallback
}
