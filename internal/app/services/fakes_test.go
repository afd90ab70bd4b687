package services

import (
	"context"
	"time"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// In-memory repository fakes shared by the service tests. They mirror
// the guarded-update semantics of the real repositories so the services
// see the same sentinel errors.

type fakeVoterRepo struct {
	voters map[int64]*models.Voter
	nextID int64
}

func newFakeVoterRepo() *fakeVoterRepo {
	return &fakeVoterRepo{voters: make(map[int64]*models.Voter), nextID: 1}
}

func (r *fakeVoterRepo) Create(_ context.Context, voter *models.Voter) (int64, error) {
	for _, v := range r.voters {
		if v.Email == voter.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *voter
	stored.ID = id
	r.voters[id] = &stored
	return id, nil
}

func (r *fakeVoterRepo) GetByID(_ context.Context, id int64) (*models.Voter, error) {
	voter, ok := r.voters[id]
	if !ok {
		return nil, apperrors.ErrVoterNotFound
	}
	copied := *voter
	return &copied, nil
}

func (r *fakeVoterRepo) GetByEmail(_ context.Context, email string) (*models.Voter, error) {
	for _, voter := range r.voters {
		if voter.Email == email {
			copied := *voter
			return &copied, nil
		}
	}
	return nil, apperrors.ErrVoterNotFound
}

func (r *fakeVoterRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, voter := range r.voters {
		if voter.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVoterRepo) ListDescriptors(_ context.Context) ([][]byte, error) {
	var descriptors [][]byte
	for _, voter := range r.voters {
		descriptors = append(descriptors, voter.Descriptor)
	}
	return descriptors, nil
}

func (r *fakeVoterRepo) SetRegNumber(_ context.Context, id int64, regNumber string) error {
	voter, ok := r.voters[id]
	if !ok {
		return apperrors.ErrVoterNotFound
	}
	voter.RegNumber = regNumber
	return nil
}

type fakeCandidateRepo struct {
	candidates map[int64]*models.Candidate
	nextID     int64
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[int64]*models.Candidate), nextID: 1}
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *models.Candidate) (int64, error) {
	for _, c := range r.candidates {
		if c.Email == candidate.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	stored := *candidate
	stored.ID = id
	r.candidates[id] = &stored
	return id, nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id int64) (*models.Candidate, error) {
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, apperrors.ErrCandidateNotFound
	}
	copied := *candidate
	return &copied, nil
}

func (r *fakeCandidateRepo) GetByEmail(_ context.Context, email string) (*models.Candidate, error) {
	for _, candidate := range r.candidates {
		if candidate.Email == email {
			copied := *candidate
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCandidateNotFound
}

func (r *fakeCandidateRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, candidate := range r.candidates {
		if candidate.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) (int64, error) {
	if _, ok := r.admins[admin.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	stored := *admin
	stored.ID = int64(len(r.admins) + 1)
	r.admins[admin.Email] = &stored
	return stored.ID, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	admin, ok := r.admins[email]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *admin
	return &copied, nil
}

type fakeElectionRepo struct {
	elections map[int64]*models.Election
	nextID    int64
}

func newFakeElectionRepo() *fakeElectionRepo {
	return &fakeElectionRepo{elections: make(map[int64]*models.Election), nextID: 1}
}

func (r *fakeElectionRepo) Create(_ context.Context, election *models.Election) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *election
	stored.ID = id
	r.elections[id] = &stored
	return id, nil
}

func (r *fakeElectionRepo) GetByID(_ context.Context, id int64) (*models.Election, error) {
	election, ok := r.elections[id]
	if !ok {
		return nil, apperrors.ErrElectionNotFound
	}
	copied := *election
	return &copied, nil
}

func (r *fakeElectionRepo) GetAll(_ context.Context) ([]*models.Election, error) {
	var elections []*models.Election
	for _, election := range r.elections {
		copied := *election
		elections = append(elections, &copied)
	}
	return elections, nil
}

func (r *fakeElectionRepo) Update(_ context.Context, election *models.Election) error {
	if _, ok := r.elections[election.ID]; !ok {
		return apperrors.ErrElectionNotFound
	}
	stored := *election
	r.elections[election.ID] = &stored
	return nil
}

func (r *fakeElectionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.elections[id]; !ok {
		return apperrors.ErrElectionNotFound
	}
	delete(r.elections, id)
	return nil
}

func (r *fakeElectionRepo) SetWinnerNotified(_ context.Context, id int64) error {
	election, ok := r.elections[id]
	if !ok || election.WinnerNotified {
		return apperrors.ErrWinnerAnnounced
	}
	election.WinnerNotified = true
	return nil
}

type fakeApplicationRepo struct {
	applications map[int64]*models.Application
	elections    *fakeElectionRepo
	nextID       int64
}

func newFakeApplicationRepo(elections *fakeElectionRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[int64]*models.Application),
		elections:    elections,
		nextID:       1,
	}
}

func (r *fakeApplicationRepo) CreateWithSeatReservation(_ context.Context, application *models.Application) (int64, int, error) {
	for _, existing := range r.applications {
		if existing.CandidateID == application.CandidateID && existing.Faculty == application.Faculty {
			return 0, 0, apperrors.ErrDuplicateApplication
		}
	}
	if application.Position == models.PositionExecutive {
		for _, existing := range r.applications {
			if existing.ExecutivePosition == application.ExecutivePosition &&
				existing.Status != models.ApprovalRejected {
				return 0, 0, apperrors.ErrPositionTaken
			}
		}
	}

	election, ok := r.elections.elections[application.ElectionID]
	if !ok {
		return 0, 0, apperrors.ErrElectionNotFound
	}
	var remaining int
	if application.Position == models.PositionExecutive {
		if election.ExecutiveSeats <= 0 {
			return 0, 0, apperrors.ErrNoSeatsRemaining
		}
		election.ExecutiveSeats--
		remaining = election.ExecutiveSeats
	} else {
		if election.DelegateSeats <= 0 {
			return 0, 0, apperrors.ErrNoSeatsRemaining
		}
		election.DelegateSeats--
		remaining = election.DelegateSeats
	}

	id := r.nextID
	r.nextID++
	stored := *application
	stored.ID = id
	r.applications[id] = &stored
	return id, remaining, nil
}

func (r *fakeApplicationRepo) GetByCandidateID(_ context.Context, candidateID int64) (*models.Application, error) {
	for _, application := range r.applications {
		if application.CandidateID == candidateID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) GetAll(_ context.Context) ([]*models.Application, error) {
	var applications []*models.Application
	for _, application := range r.applications {
		copied := *application
		applications = append(applications, &copied)
	}
	return applications, nil
}

func (r *fakeApplicationRepo) SetStatus(_ context.Context, id int64, status models.ApprovalStatus) error {
	application, ok := r.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	application.Status = status
	return nil
}

type fakeBallotRepo struct {
	ballots map[int64]*models.Ballot
	nextID  int64
}

func newFakeBallotRepo() *fakeBallotRepo {
	return &fakeBallotRepo{ballots: make(map[int64]*models.Ballot), nextID: 1}
}

func (r *fakeBallotRepo) Create(_ context.Context, candidateID int64) error {
	if _, ok := r.ballots[candidateID]; ok {
		return nil
	}
	r.ballots[candidateID] = &models.Ballot{
		ID:          r.nextID,
		CandidateID: candidateID,
		Status:      models.ApprovalApproved,
	}
	r.nextID++
	return nil
}

func (r *fakeBallotRepo) GetByCandidateID(_ context.Context, candidateID int64) (*models.Ballot, error) {
	ballot, ok := r.ballots[candidateID]
	if !ok {
		return nil, apperrors.ErrCandidateNotBallot
	}
	copied := *ballot
	return &copied, nil
}

type fakeVoteRepo struct {
	voters     *fakeVoterRepo
	candidates *fakeCandidateRepo
	ballots    *fakeBallotRepo
	votes      []*models.Vote
}

func newFakeVoteRepo(voters *fakeVoterRepo, candidates *fakeCandidateRepo, ballots *fakeBallotRepo) *fakeVoteRepo {
	return &fakeVoteRepo{voters: voters, candidates: candidates, ballots: ballots}
}

func (r *fakeVoteRepo) RecordVoterVote(_ context.Context, vote *models.Vote) (int64, error) {
	voter, ok := r.voters.voters[vote.VoterID]
	if !ok || voter.VotingStatus != models.NotVoted {
		return 0, apperrors.ErrAlreadyVoted
	}
	ballot, ok := r.ballots.ballots[vote.CandidateID]
	if !ok {
		return 0, apperrors.ErrCandidateNotBallot
	}
	voter.VotingStatus = models.Voted
	ballot.TotalVotes++

	stored := *vote
	stored.ID = int64(len(r.votes) + 1)
	r.votes = append(r.votes, &stored)
	return stored.ID, nil
}

func (r *fakeVoteRepo) RecordCandidateVote(_ context.Context, candidateID int64, category models.PositionKind, targetCandidateID int64) error {
	candidate, ok := r.candidates.candidates[candidateID]
	if !ok {
		return apperrors.ErrCandidateNotFound
	}
	switch category {
	case models.PositionExecutive:
		if candidate.ExecutiveVoted {
			return apperrors.ErrCategoryAlreadyUsed
		}
	default:
		if candidate.DelegateVoted {
			return apperrors.ErrCategoryAlreadyUsed
		}
	}
	ballot, ok := r.ballots.ballots[targetCandidateID]
	if !ok {
		return apperrors.ErrCandidateNotBallot
	}
	if category == models.PositionExecutive {
		candidate.ExecutiveVoted = true
	} else {
		candidate.DelegateVoted = true
	}
	ballot.TotalVotes++
	return nil
}

type fakeOTPRepo struct {
	rows   []*models.OTP
	nextID int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{nextID: 1}
}

func (r *fakeOTPRepo) Create(_ context.Context, otp *models.OTP) (int64, error) {
	stored := *otp
	stored.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, &stored)
	return stored.ID, nil
}

func (r *fakeOTPRepo) GetActiveByOwnerAndCode(_ context.Context, ownerID int64, ownerKind models.OTPOwnerKind, code string) (*models.OTP, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if row.OwnerID == ownerID && row.OwnerKind == ownerKind && row.Code == code && !row.Verified {
			if row.ExpiresAt.Before(time.Now()) {
				return nil, apperrors.ErrOTPExpired
			}
			copied := *row
			return &copied, nil
		}
	}
	return nil, apperrors.ErrOTPInvalid
}

func (r *fakeOTPRepo) MarkVerified(_ context.Context, id int64) error {
	for _, row := range r.rows {
		if row.ID == id {
			if row.Verified {
				return apperrors.ErrOTPInvalid
			}
			row.Verified = true
			return nil
		}
	}
	return apperrors.ErrOTPInvalid
}

type fakeResultRepo struct {
	ballots      *fakeBallotRepo
	applications *fakeApplicationRepo
	candidates   *fakeCandidateRepo
	rows         []*models.ResultRow
}

func newFakeResultRepo(ballots *fakeBallotRepo, applications *fakeApplicationRepo, candidates *fakeCandidateRepo) *fakeResultRepo {
	return &fakeResultRepo{ballots: ballots, applications: applications, candidates: candidates}
}

// ReplaceAll rebuilds the rows from the ballot counters the way the
// real repository rebuilds the results table.
func (r *fakeResultRepo) ReplaceAll(_ context.Context) error {
	r.rows = nil
	for _, ballot := range r.ballots.ballots {
		row := &models.ResultRow{
			CandidateID: ballot.CandidateID,
			TotalVotes:  ballot.TotalVotes,
		}
		for _, application := range r.applications.applications {
			if application.CandidateID == ballot.CandidateID && application.Status == models.ApprovalApproved {
				row.ElectionID = application.ElectionID
			}
		}
		if candidate, ok := r.candidates.candidates[ballot.CandidateID]; ok {
			row.CandidateName = candidate.FullName()
			row.Email = candidate.Email
		}
		r.rows = append(r.rows, row)
	}
	return nil
}

func (r *fakeResultRepo) GetResults(_ context.Context, electionID int64) ([]*models.ResultRow, error) {
	var results []*models.ResultRow
	for _, row := range r.rows {
		if electionID > 0 && row.ElectionID != electionID {
			continue
		}
		copied := *row
		results = append(results, &copied)
	}
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].TotalVotes > results[i].TotalVotes ||
				(results[j].TotalVotes == results[i].TotalVotes && results[j].CandidateID < results[i].CandidateID) {
				results[i], results[j] = results[j], results[i]
			}
		}
	}
	return results, nil
}

func (r *fakeResultRepo) GetWinner(ctx context.Context, electionID int64) (*models.ResultRow, error) {
	results, err := r.GetResults(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNoResults
	}
	return results[0], nil
}

// fakeEmailService records outgoing mail instead of sending it.
type fakeEmailService struct {
	welcome      []string
	otpCodes     []string
	applications []string
	outcomes     []bool
	winners      []string
	failAll      bool
}

type fakeEmailError struct{}

func (fakeEmailError) Error() string { return "smtp unavailable" }

func (s *fakeEmailService) SendWelcomeEmail(toEmail, _, _ string) error {
	if s.failAll {
		return fakeEmailError{}
	}
	s.welcome = append(s.welcome, toEmail)
	return nil
}

func (s *fakeEmailService) SendOTPEmail(_, _, code string) error {
	if s.failAll {
		return fakeEmailError{}
	}
	s.otpCodes = append(s.otpCodes, code)
	return nil
}

func (s *fakeEmailService) SendApplicationReceivedEmail(toEmail, _, _ string) error {
	if s.failAll {
		return fakeEmailError{}
	}
	s.applications = append(s.applications, toEmail)
	return nil
}

func (s *fakeEmailService) SendApplicationOutcomeEmail(_, _ string, approved bool) error {
	if s.failAll {
		return fakeEmailError{}
	}
	s.outcomes = append(s.outcomes, approved)
	return nil
}

func (s *fakeEmailService) SendWinnerEmail(toEmail, _ string, _ int64) error {
	if s.failAll {
		return fakeEmailError{}
	}
	s.winners = append(s.winners, toEmail)
	return nil
}
