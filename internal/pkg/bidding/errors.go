package bidding

import "errors"

// ErrorKind classifies why a bidding operation was refused. Every kind maps
// to one specific user-facing message; storage failures are never wrapped in
// a BidError and surface as plain errors instead.
type ErrorKind string

const (
	ErrNotFound             ErrorKind = "not_found"
	ErrForbidden            ErrorKind = "forbidden"
	ErrAlreadyDecided       ErrorKind = "already_decided"
	ErrAuctionClosed        ErrorKind = "auction_closed"
	ErrSelfBidding          ErrorKind = "self_bidding"
	ErrBidTooLow            ErrorKind = "bid_too_low"
	ErrBidderRejected       ErrorKind = "bidder_rejected"
	ErrIneligibleReputation ErrorKind = "ineligible_reputation"
	ErrNoPriorBid           ErrorKind = "no_prior_bid"
	ErrBuyNowUnavailable    ErrorKind = "buy_now_unavailable"
)

// BidError is a validation failure of a bidding operation. It is detected
// before any write, so a returned BidError guarantees nothing was persisted.
type BidError struct {
	Kind    ErrorKind
	Message string
}

func (e *BidError) Error() string {
	return e.Message
}

func newBidError(kind ErrorKind, message string) *BidError {
	return &BidError{Kind: kind, Message: message}
}

// KindOf returns the error kind of err, or an empty kind if err is not a
// bidding validation failure.
func KindOf(err error) ErrorKind {
	var be *BidError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// IsKind reports whether err is a bidding validation failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
