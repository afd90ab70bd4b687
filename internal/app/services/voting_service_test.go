package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
)

type votingFixture struct {
	svc        VotingService
	voters     *fakeVoterRepo
	candidates *fakeCandidateRepo
	ballots    *fakeBallotRepo
	elections  *fakeElectionRepo
	votes      *fakeVoteRepo
}

func newVotingFixture(t *testing.T) *votingFixture {
	t.Helper()

	f := &votingFixture{
		voters:     newFakeVoterRepo(),
		candidates: newFakeCandidateRepo(),
		ballots:    newFakeBallotRepo(),
		elections:  newFakeElectionRepo(),
	}
	f.votes = newFakeVoteRepo(f.voters, f.candidates, f.ballots)
	f.svc = NewVotingService(f.votes, f.voters, f.candidates, f.ballots, f.elections, zerolog.Nop())
	return f
}

func (f *votingFixture) addVoter(t *testing.T, descriptor []float64, status models.AccountStatus) int64 {
	t.Helper()

	id, err := f.voters.Create(context.Background(), &models.Voter{
		FirstName:    "Jane",
		LastName:     "Wanjiku",
		Email:        "jane@students.example.ke",
		Faculty:      "Computing and Information Technology",
		Descriptor:   biometrics.Descriptor(descriptor).Encode(),
		Status:       status,
		VotingStatus: models.NotVoted,
	})
	if err != nil {
		t.Fatalf("seeding voter: %v", err)
	}
	return id
}

// addBallotCandidate seeds an approved candidate with an open ballot
// entry.
func (f *votingFixture) addBallotCandidate(t *testing.T, email string) int64 {
	t.Helper()

	id, err := f.candidates.Create(context.Background(), &models.Candidate{
		FirstName:  "Brian",
		LastName:   "Otieno",
		Email:      email,
		Faculty:    "Computing and Information Technology",
		RegNumber:  "CIT-123-456/2022",
		Descriptor: biometrics.Descriptor(testDescriptor(3)).Encode(),
		Status:     models.StatusActive,
	})
	if err != nil {
		t.Fatalf("seeding candidate: %v", err)
	}
	if err := f.ballots.Create(context.Background(), id); err != nil {
		t.Fatalf("seeding ballot entry: %v", err)
	}
	return id
}

func TestCastVote(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusActive)
	candidateID := f.addBallotCandidate(t, "brian@students.example.ke")

	resp, err := f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: candidateID,
		Descriptor:  descriptor,
	})
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if resp.VoteID == 0 {
		t.Error("VoteID = 0, want an assigned ID")
	}

	voter, _ := f.voters.GetByID(context.Background(), voterID)
	if voter.VotingStatus != models.Voted {
		t.Errorf("VotingStatus = %q, want Voted", voter.VotingStatus)
	}
	ballot, _ := f.ballots.GetByCandidateID(context.Background(), candidateID)
	if ballot.TotalVotes != 1 {
		t.Errorf("TotalVotes = %d, want 1", ballot.TotalVotes)
	}
}

func TestCastVoteTwice(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusActive)
	candidateID := f.addBallotCandidate(t, "brian@students.example.ke")

	req := &dto.CastVoteRequest{CandidateID: candidateID, Descriptor: descriptor}
	if _, err := f.svc.CastVote(context.Background(), voterID, req); err != nil {
		t.Fatalf("first CastVote() error = %v", err)
	}
	if _, err := f.svc.CastVote(context.Background(), voterID, req); !errors.Is(err, apperrors.ErrAlreadyVoted) {
		t.Errorf("second CastVote() error = %v, want ErrAlreadyVoted", err)
	}

	ballot, _ := f.ballots.GetByCandidateID(context.Background(), candidateID)
	if ballot.TotalVotes != 1 {
		t.Errorf("TotalVotes = %d, want 1 after a rejected second vote", ballot.TotalVotes)
	}
}

func TestCastVoteBiometricMismatch(t *testing.T) {
	f := newVotingFixture(t)
	voterID := f.addVoter(t, testDescriptor(1), models.StatusActive)
	candidateID := f.addBallotCandidate(t, "brian@students.example.ke")

	_, err := f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: candidateID,
		Descriptor:  unrelatedDescriptor(),
	})
	if !errors.Is(err, apperrors.ErrBiometricMismatch) {
		t.Errorf("CastVote() error = %v, want ErrBiometricMismatch", err)
	}

	voter, _ := f.voters.GetByID(context.Background(), voterID)
	if voter.VotingStatus != models.NotVoted {
		t.Error("a failed biometric check must not consume the vote")
	}
}

func TestCastVoteInactiveVoter(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusInactive)
	candidateID := f.addBallotCandidate(t, "brian@students.example.ke")

	_, err := f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: candidateID,
		Descriptor:  descriptor,
	})
	if !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Errorf("CastVote() error = %v, want ErrAccountInactive", err)
	}
}

func TestCastVoteTargetNotOnBallot(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusActive)

	// A registered candidate without an approved application has no
	// ballot entry.
	candidateID, err := f.candidates.Create(context.Background(), &models.Candidate{
		FirstName: "Brian", LastName: "Otieno",
		Email: "brian@students.example.ke", Faculty: "Computing and Information Technology",
		RegNumber:  "CIT-123-456/2022",
		Descriptor: biometrics.Descriptor(testDescriptor(3)).Encode(),
		Status:     models.StatusActive,
	})
	if err != nil {
		t.Fatalf("seeding candidate: %v", err)
	}

	_, err = f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: candidateID,
		Descriptor:  descriptor,
	})
	if !errors.Is(err, apperrors.ErrCandidateNotBallot) {
		t.Errorf("CastVote() error = %v, want ErrCandidateNotBallot", err)
	}

	voter, _ := f.voters.GetByID(context.Background(), voterID)
	if voter.VotingStatus != models.NotVoted {
		t.Error("a rejected vote must not consume the voter's ballot")
	}
}

func TestCastVoteUnknownTarget(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusActive)

	_, err := f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: 999,
		Descriptor:  descriptor,
	})
	if !errors.Is(err, apperrors.ErrCandidateNotFound) {
		t.Errorf("CastVote() error = %v, want ErrCandidateNotFound", err)
	}
}

func TestCastVoteUnknownElection(t *testing.T) {
	f := newVotingFixture(t)
	descriptor := testDescriptor(1)
	voterID := f.addVoter(t, descriptor, models.StatusActive)
	candidateID := f.addBallotCandidate(t, "brian@students.example.ke")

	_, err := f.svc.CastVote(context.Background(), voterID, &dto.CastVoteRequest{
		CandidateID: candidateID,
		ElectionID:  42,
		Descriptor:  descriptor,
	})
	if !errors.Is(err, apperrors.ErrElectionNotFound) {
		t.Errorf("CastVote() error = %v, want ErrElectionNotFound", err)
	}
}

func TestCastCandidateVote(t *testing.T) {
	f := newVotingFixture(t)
	voterCandidate := f.addBallotCandidate(t, "brian@students.example.ke")
	target := f.addBallotCandidate(t, "atieno@students.example.ke")

	delegateReq := &dto.CandidateVoteRequest{CandidateID: target, Category: models.PositionDelegate}
	if _, err := f.svc.CastCandidateVote(context.Background(), voterCandidate, delegateReq); err != nil {
		t.Fatalf("delegate CastCandidateVote() error = %v", err)
	}

	// One vote per category: the delegate vote is spent, the executive
	// vote is not.
	if _, err := f.svc.CastCandidateVote(context.Background(), voterCandidate, delegateReq); !errors.Is(err, apperrors.ErrCategoryAlreadyUsed) {
		t.Errorf("repeated delegate vote error = %v, want ErrCategoryAlreadyUsed", err)
	}

	executiveReq := &dto.CandidateVoteRequest{CandidateID: target, Category: models.PositionExecutive}
	if _, err := f.svc.CastCandidateVote(context.Background(), voterCandidate, executiveReq); err != nil {
		t.Fatalf("executive CastCandidateVote() error = %v", err)
	}

	ballot, _ := f.ballots.GetByCandidateID(context.Background(), target)
	if ballot.TotalVotes != 2 {
		t.Errorf("TotalVotes = %d, want 2", ballot.TotalVotes)
	}
}

func TestCastCandidateVoteTargetNotOnBallot(t *testing.T) {
	f := newVotingFixture(t)
	voterCandidate := f.addBallotCandidate(t, "brian@students.example.ke")

	target, err := f.candidates.Create(context.Background(), &models.Candidate{
		FirstName: "Atieno", LastName: "Odhiambo",
		Email: "atieno@students.example.ke", Faculty: "Computing and Information Technology",
		RegNumber:  "CIT-321-654/2022",
		Descriptor: biometrics.Descriptor(testDescriptor(2)).Encode(),
		Status:     models.StatusActive,
	})
	if err != nil {
		t.Fatalf("seeding candidate: %v", err)
	}

	_, err = f.svc.CastCandidateVote(context.Background(), voterCandidate, &dto.CandidateVoteRequest{
		CandidateID: target,
		Category:    models.PositionDelegate,
	})
	if !errors.Is(err, apperrors.ErrCandidateNotBallot) {
		t.Errorf("CastCandidateVote() error = %v, want ErrCandidateNotBallot", err)
	}
}
