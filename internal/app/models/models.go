package models

// AccountStatus marks a person record active or inactive
type AccountStatus string

const (
	StatusActive   AccountStatus = "Active"
	StatusInactive AccountStatus = "Inactive"
)

// VotingStatus tracks the one-shot voting state of a voter
type VotingStatus string

const (
	NotVoted VotingStatus = "NotVoted"
	Voted    VotingStatus = "Voted"
)

// PositionKind is the category a candidate contests in
type PositionKind string

const (
	PositionDelegate  PositionKind = "Delegate"
	PositionExecutive PositionKind = "Executive"
)

// ApprovalStatus is the review state of an application or ballot entry
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// ElectionStatus is the lifecycle state of an election
type ElectionStatus string

const (
	ElectionUpcoming  ElectionStatus = "Upcoming"
	ElectionOngoing   ElectionStatus = "Ongoing"
	ElectionCompleted ElectionStatus = "Completed"
)
