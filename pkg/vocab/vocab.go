package vocab

// LeadStatus is the fine-grained, operator-facing classification of a lead.
type LeadStatus string

const (
	StatusNew           LeadStatus = "New"
	StatusAICalledNoAns LeadStatus = "AI Called – No Answer"
	StatusAISpokeToLead LeadStatus = "AI Spoke to Lead"
	StatusNeedsFollowUp LeadStatus = "Needs VA Follow-Up"
	StatusApptBooked    LeadStatus = "Appointment Booked"
	StatusApptCompleted LeadStatus = "Appointment Completed"
	StatusNoShow        LeadStatus = "No Show"
	StatusNotInterested LeadStatus = "Not Interested"
)

// PipelineStage is the CRM's coarse sales-funnel bucket. Several statuses
// collapse into one stage.
type PipelineStage string

const (
	StageNewLead       PipelineStage = "NEW_LEAD"
	StageAIEngaging    PipelineStage = "AI_ENGAGING"
	StageNeedsAction   PipelineStage = "NEEDS_ACTION"
	StageBooked        PipelineStage = "BOOKED"
	StageCompletedPaid PipelineStage = "COMPLETED_PAID"
)

// AppointmentStatus is the appointment endpoint's own status vocabulary.
type AppointmentStatus string

const (
	ApptAICalledNoAns AppointmentStatus = "AI CALLED - NO ANSWER"
	ApptAISpoke       AppointmentStatus = "AI SPOKE TO LEAD"
	ApptScheduled     AppointmentStatus = "SCHEDULED"
	ApptNeedsFollowUp AppointmentStatus = "NEEDS VA TO FOLLOW UP"
	ApptBooked        AppointmentStatus = "APPOINTMENT BOOKED"
	ApptCompleted     AppointmentStatus = "APPOINTMENT COMPLETED"
	ApptNoShow        AppointmentStatus = "NO SHOW"
	ApptNotInterested AppointmentStatus = "NOT INTERESTED"
)

// AllStatuses lists every valid lead status.
var AllStatuses = []LeadStatus{
	StatusNew,
	StatusAICalledNoAns,
	StatusAISpokeToLead,
	StatusNeedsFollowUp,
	StatusApptBooked,
	StatusApptCompleted,
	StatusNoShow,
	StatusNotInterested,
}

// AllStages lists every valid pipeline stage.
var AllStages = []PipelineStage{
	StageNewLead,
	StageAIEngaging,
	StageNeedsAction,
	StageBooked,
	StageCompletedPaid,
}

// StatusToStage returns the pipeline bucket that owns a status. Statuses
// outside pipeline tracking ("Not Interested") return false; callers must
// then skip the pipeline write.
func StatusToStage(status LeadStatus) (PipelineStage, bool) {
	switch status {
	case StatusNew:
		return StageNewLead, true
	case StatusAICalledNoAns, StatusAISpokeToLead:
		return StageAIEngaging, true
	case StatusNeedsFollowUp, StatusNoShow:
		return StageNeedsAction, true
	case StatusApptBooked:
		return StageBooked, true
	case StatusApptCompleted:
		return StageCompletedPaid, true
	default:
		return "", false
	}
}

// StageToStatus returns the canonical representative status for a stage.
// The mapping is lossy on purpose: AI_ENGAGING always comes back as
// "AI Spoke to Lead" even though two statuses forward-map to it, so
// status -> stage -> status is not a round trip.
func StageToStatus(stage PipelineStage) LeadStatus {
	switch stage {
	case StageAIEngaging:
		return StatusAISpokeToLead
	case StageNeedsAction:
		return StatusNeedsFollowUp
	case StageBooked:
		return StatusApptBooked
	case StageCompletedPaid:
		return StatusApptCompleted
	default:
		return StatusNew
	}
}

// ParseStage resolves a raw feed value to a pipeline stage.
func ParseStage(raw string) (PipelineStage, bool) {
	switch PipelineStage(raw) {
	case StageNewLead, StageAIEngaging, StageNeedsAction, StageBooked, StageCompletedPaid:
		return PipelineStage(raw), true
	}
	return "", false
}

// ParseStatus resolves a raw value to a lead status.
func ParseStatus(raw string) (LeadStatus, bool) {
	for _, s := range AllStatuses {
		if LeadStatus(raw) == s {
			return s, true
		}
	}
	return "", false
}

// StatusToAppointment maps a lead status to the appointment endpoint's
// vocabulary. "New" carries no appointment status override and returns false.
func StatusToAppointment(status LeadStatus) (AppointmentStatus, bool) {
	switch status {
	case StatusAICalledNoAns:
		return ApptAICalledNoAns, true
	case StatusAISpokeToLead:
		return ApptAISpoke, true
	case StatusNeedsFollowUp:
		return ApptNeedsFollowUp, true
	case StatusApptBooked:
		return ApptBooked, true
	case StatusApptCompleted:
		return ApptCompleted, true
	case StatusNoShow:
		return ApptNoShow, true
	case StatusNotInterested:
		return ApptNotInterested, true
	default:
		return "", false
	}
}
