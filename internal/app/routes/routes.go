package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dmwangi/uchaguzi/internal/app/controllers"
	"github.com/dmwangi/uchaguzi/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	votingController *controllers.VotingController,
	resultsController *controllers.ResultsController,
	electionController *controllers.ElectionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public registration routes ---
	v1.POST("/voters/register", registrationController.RegisterVoter)
	v1.POST("/candidates/register", registrationController.RegisterCandidate)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/admin/login", authController.AdminLogin)
		auth.POST("/admin/logout", authController.AdminLogout)

		auth.POST("/voters/login", authController.VoterLogin)
		auth.POST("/voters/otp", authController.VoterRequestOTP)
		auth.POST("/voters/otp/verify", authController.VoterVerifyOTP)
		auth.POST("/voters/logout", authController.VoterLogout)

		auth.POST("/candidates/login", authController.CandidateLogin)
		auth.POST("/candidates/otp", authController.CandidateRequestOTP)
		auth.POST("/candidates/otp/verify", authController.CandidateVerifyOTP)
		auth.POST("/candidates/logout", authController.CandidateLogout)
	}

	// --- Voter routes ---
	voterProtected := v1.Group("")
	voterProtected.Use(authMiddleware.RequireVoter())
	{
		voterProtected.POST("/votes", votingController.CastVote)
	}

	// --- Candidate routes ---
	candidateProtected := v1.Group("")
	candidateProtected.Use(authMiddleware.RequireCandidate())
	{
		candidateProtected.POST("/votes/candidate", votingController.CastCandidateVote)
		candidateProtected.POST("/applications/delegate", applicationController.ApplyDelegate)
		candidateProtected.POST("/applications/executive", applicationController.ApplyExecutive)
	}

	// --- Public result routes ---
	v1.GET("/results", resultsController.GetResults)
	v1.GET("/elections", electionController.ListElections)
	v1.GET("/elections/:id", electionController.GetElection)

	// --- Admin routes ---
	adminProtected := v1.Group("")
	adminProtected.Use(authMiddleware.RequireAdmin())
	{
		adminProtected.GET("/applications", applicationController.ListApplications)
		adminProtected.PUT("/applications/:candidateId/approve", applicationController.ApproveApplication)
		adminProtected.PUT("/applications/:candidateId/reject", applicationController.RejectApplication)

		adminProtected.POST("/elections", electionController.CreateElection)
		adminProtected.PUT("/elections/:id", electionController.UpdateElection)
		adminProtected.DELETE("/elections/:id", electionController.DeleteElection)

		adminProtected.POST("/results/tally", resultsController.Tally)
		adminProtected.POST("/results/announce/:electionId", resultsController.AnnounceWinner)
	}
}
