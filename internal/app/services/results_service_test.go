package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
)

type resultsFixture struct {
	svc          ResultsService
	results      *fakeResultRepo
	elections    *fakeElectionRepo
	candidates   *fakeCandidateRepo
	applications *fakeApplicationRepo
	ballots      *fakeBallotRepo
	mail         *fakeEmailService
	electionID   int64
}

func newResultsFixture(t *testing.T) *resultsFixture {
	t.Helper()

	f := &resultsFixture{
		elections:  newFakeElectionRepo(),
		candidates: newFakeCandidateRepo(),
		ballots:    newFakeBallotRepo(),
		mail:       &fakeEmailService{},
	}
	f.applications = newFakeApplicationRepo(f.elections)
	f.results = newFakeResultRepo(f.ballots, f.applications, f.candidates)
	f.svc = NewResultsService(f.results, f.elections, f.candidates, f.mail, zerolog.Nop())

	id, err := f.elections.Create(context.Background(), &models.Election{
		Title:          "Student Council 2026",
		StartsAt:       time.Now().Add(-48 * time.Hour),
		EndsAt:         time.Now().Add(-time.Hour),
		Status:         models.ElectionCompleted,
		DelegateSeats:  10,
		ExecutiveSeats: 10,
	})
	if err != nil {
		t.Fatalf("seeding election: %v", err)
	}
	f.electionID = id
	return f
}

// addTalliedCandidate seeds an approved candidate with a ballot entry
// holding the given vote count.
func (f *resultsFixture) addTalliedCandidate(t *testing.T, firstName, lastName, email string, votes int64) int64 {
	t.Helper()

	ctx := context.Background()
	id, err := f.candidates.Create(ctx, &models.Candidate{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Faculty:    "Computing and Information Technology",
		RegNumber:  "CIT-123-456/2022",
		Descriptor: biometrics.Descriptor(testDescriptor(1)).Encode(),
		Status:     models.StatusActive,
	})
	if err != nil {
		t.Fatalf("seeding candidate: %v", err)
	}

	if _, _, err := f.applications.CreateWithSeatReservation(ctx, &models.Application{
		CandidateID: id,
		ElectionID:  f.electionID,
		Position:    models.PositionDelegate,
		Faculty:     "Computing and Information Technology",
		Status:      models.ApprovalApproved,
	}); err != nil {
		t.Fatalf("seeding application: %v", err)
	}
	if err := f.ballots.Create(ctx, id); err != nil {
		t.Fatalf("seeding ballot entry: %v", err)
	}
	f.ballots.ballots[id].TotalVotes = votes
	return id
}

func TestTallyAndGetResults(t *testing.T) {
	f := newResultsFixture(t)
	leaderID := f.addTalliedCandidate(t, "Brian", "Otieno", "brian@students.example.ke", 40)
	runnerUpID := f.addTalliedCandidate(t, "Atieno", "Odhiambo", "atieno@students.example.ke", 25)

	if err := f.svc.Tally(context.Background()); err != nil {
		t.Fatalf("Tally() error = %v", err)
	}

	resp, err := f.svc.GetResults(context.Background(), f.electionID)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].CandidateID != leaderID || resp.Results[1].CandidateID != runnerUpID {
		t.Error("results are not ordered by vote count")
	}
	if resp.Winner == nil || resp.Winner.CandidateID != leaderID {
		t.Errorf("Winner = %+v, want candidate %d", resp.Winner, leaderID)
	}
	if resp.Winner.TotalVotes != 40 {
		t.Errorf("Winner.TotalVotes = %d, want 40", resp.Winner.TotalVotes)
	}
}

func TestTallyIsRepeatable(t *testing.T) {
	f := newResultsFixture(t)
	f.addTalliedCandidate(t, "Brian", "Otieno", "brian@students.example.ke", 40)

	for i := 0; i < 3; i++ {
		if err := f.svc.Tally(context.Background()); err != nil {
			t.Fatalf("Tally() run %d error = %v", i+1, err)
		}
	}

	resp, err := f.svc.GetResults(context.Background(), f.electionID)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d after repeated tallies, want 1", len(resp.Results))
	}
	if resp.Results[0].TotalVotes != 40 {
		t.Errorf("TotalVotes = %d after repeated tallies, want 40", resp.Results[0].TotalVotes)
	}
}

// Two candidates can share a display name; the winner is resolved by
// candidate ID, never by name.
func TestWinnerResolvedByCandidateID(t *testing.T) {
	f := newResultsFixture(t)
	f.addTalliedCandidate(t, "Brian", "Otieno", "brian@students.example.ke", 10)
	namesakeID := f.addTalliedCandidate(t, "Brian", "Otieno", "brian.o@students.example.ke", 55)

	if err := f.svc.Tally(context.Background()); err != nil {
		t.Fatalf("Tally() error = %v", err)
	}

	resp, err := f.svc.GetResults(context.Background(), f.electionID)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if resp.Winner.CandidateID != namesakeID {
		t.Errorf("Winner.CandidateID = %d, want %d", resp.Winner.CandidateID, namesakeID)
	}
}

func TestGetResultsEmpty(t *testing.T) {
	f := newResultsFixture(t)

	if err := f.svc.Tally(context.Background()); err != nil {
		t.Fatalf("Tally() error = %v", err)
	}
	if _, err := f.svc.GetResults(context.Background(), f.electionID); !errors.Is(err, apperrors.ErrNoResults) {
		t.Errorf("GetResults() error = %v, want ErrNoResults", err)
	}
}

func TestAnnounceWinner(t *testing.T) {
	f := newResultsFixture(t)
	winnerID := f.addTalliedCandidate(t, "Brian", "Otieno", "brian@students.example.ke", 40)
	f.addTalliedCandidate(t, "Atieno", "Odhiambo", "atieno@students.example.ke", 25)

	if err := f.svc.Tally(context.Background()); err != nil {
		t.Fatalf("Tally() error = %v", err)
	}

	winner, err := f.svc.AnnounceWinner(context.Background(), f.electionID)
	if err != nil {
		t.Fatalf("AnnounceWinner() error = %v", err)
	}
	if winner.CandidateID != winnerID {
		t.Errorf("CandidateID = %d, want %d", winner.CandidateID, winnerID)
	}
	if len(f.mail.winners) != 1 || f.mail.winners[0] != "brian@students.example.ke" {
		t.Errorf("winner emails = %v, want one to the winner", f.mail.winners)
	}

	// The announcement happens at most once per election.
	if _, err := f.svc.AnnounceWinner(context.Background(), f.electionID); !errors.Is(err, apperrors.ErrWinnerAnnounced) {
		t.Errorf("second AnnounceWinner() error = %v, want ErrWinnerAnnounced", err)
	}
	if len(f.mail.winners) != 1 {
		t.Errorf("winner emails = %d after repeated announce, want 1", len(f.mail.winners))
	}
}

// A failed winner lookup must not consume the one announcement the
// election gets.
func TestAnnounceWinnerRetriesAfterLookupFailure(t *testing.T) {
	f := newResultsFixture(t)
	winnerID := f.addTalliedCandidate(t, "Brian", "Otieno", "brian@students.example.ke", 40)

	if err := f.svc.Tally(context.Background()); err != nil {
		t.Fatalf("Tally() error = %v", err)
	}

	winnerRecord := f.candidates.candidates[winnerID]
	delete(f.candidates.candidates, winnerID)

	if _, err := f.svc.AnnounceWinner(context.Background(), f.electionID); !errors.Is(err, apperrors.ErrCandidateNotFound) {
		t.Fatalf("AnnounceWinner() error = %v, want ErrCandidateNotFound", err)
	}
	if len(f.mail.winners) != 0 {
		t.Fatalf("winner emails = %d after failed announce, want 0", len(f.mail.winners))
	}

	f.candidates.candidates[winnerID] = winnerRecord
	winner, err := f.svc.AnnounceWinner(context.Background(), f.electionID)
	if err != nil {
		t.Fatalf("retried AnnounceWinner() error = %v", err)
	}
	if winner.CandidateID != winnerID {
		t.Errorf("CandidateID = %d, want %d", winner.CandidateID, winnerID)
	}
	if len(f.mail.winners) != 1 {
		t.Errorf("winner emails = %d, want 1", len(f.mail.winners))
	}
}

func TestAnnounceWinnerUnknownElection(t *testing.T) {
	f := newResultsFixture(t)

	if _, err := f.svc.AnnounceWinner(context.Background(), 42); !errors.Is(err, apperrors.ErrElectionNotFound) {
		t.Errorf("AnnounceWinner() error = %v, want ErrElectionNotFound", err)
	}
}

func TestAnnounceWinnerNoResults(t *testing.T) {
	f := newResultsFixture(t)

	if _, err := f.svc.AnnounceWinner(context.Background(), f.electionID); !errors.Is(err, apperrors.ErrNoResults) {
		t.Errorf("AnnounceWinner() error = %v, want ErrNoResults", err)
	}
}
