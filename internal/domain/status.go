package domain

// Donation request statuses.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestDenied   = "Denied"
	RequestAccepted = "Accepted"
	RequestClaimed  = "Claimed"
)

// requestTransitions is the legal workflow. Denied and Claimed are terminal.
// Accepted has no defined exit, so it is terminal in practice.
var requestTransitions = map[string][]string{
	RequestPending:  {RequestApproved, RequestDenied},
	RequestApproved: {RequestAccepted, RequestClaimed},
}

// IsRequestStatus reports whether s is one of the enumerated request statuses.
func IsRequestStatus(s string) bool {
	switch s {
	case RequestPending, RequestApproved, RequestDenied, RequestAccepted, RequestClaimed:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
