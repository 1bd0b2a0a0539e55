package services

import "errors"

// Sentinel errors returned by the couple and ledger services.
// Handlers map these to HTTP statuses; anything else is a 500.
var (
	ErrNotInCouple         = errors.New("user does not belong to a couple")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrNotBorrower         = errors.New("only the borrower can pay this loan")
	ErrOverpayment         = errors.New("payment exceeds remaining balance")
	ErrPartiesNotInCouple  = errors.New("lender and borrower must both be members of the couple")
	ErrAlreadyPaired       = errors.New("user already belongs to a couple")
	ErrInvalidInviteCode   = errors.New("invite code not found")
	ErrSelfInvite          = errors.New("cannot send an invitation to yourself")
	ErrReceiverPaired      = errors.New("receiver already belongs to a couple")
	ErrDuplicateInvitation = errors.New("a pending invitation to this user already exists")
	ErrInvitationNotFound  = errors.New("invitation not found")
)
