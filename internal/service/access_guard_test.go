package service_test

import (
	"errors"
	"testing"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/mocks"
	"makeitall-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type AccessGuardTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockProjectRepo    *mocks.MockProjectRepositoryInterface
	mockMembershipRepo *mocks.MockMembershipRepositoryInterface
	guard              *service.AccessGuard

	project *models.Project
	leader  auth.Identity
	manager auth.Identity
	member  auth.Identity
}

func (suite *AccessGuardTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProjectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.mockMembershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.guard = service.NewAccessGuard(suite.mockProjectRepo, suite.mockMembershipRepo)

	leaderID := uuid.New()
	suite.project = &models.Project{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Phoenix",
		Status:       models.ProjectStatusActive,
		CreatedBy:    uuid.New(),
		TeamLeaderID: leaderID,
	}
	suite.leader = auth.Identity{ID: leaderID, Email: "leader@test.com", Role: models.UserRoleTeamLeader}
	suite.manager = auth.Identity{ID: uuid.New(), Email: "manager@test.com", Role: models.UserRoleManager}
	suite.member = auth.Identity{ID: uuid.New(), Email: "member@test.com", Role: models.UserRoleTeamMember}
}

func (suite *AccessGuardTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccessGuardTestSuite) TestCheckAccess_ManagerWithoutMembership() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, suite.manager)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decision.IsManager)
	assert.False(suite.T(), decision.IsTeamLeaderOfProject)
	assert.True(suite.T(), decision.CanManageProject)
	assert.True(suite.T(), decision.CanCloseProject)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_TeamLeaderOfProject() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, suite.leader)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), decision.IsManager)
	assert.True(suite.T(), decision.IsTeamLeaderOfProject)
	assert.True(suite.T(), decision.CanManageProject)
	assert.False(suite.T(), decision.CanCloseProject)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_TeamLeaderOfOtherProject() {
	// Team leader role alone grants nothing; leadership is per project.
	otherLeader := auth.Identity{ID: uuid.New(), Email: "other@test.com", Role: models.UserRoleTeamLeader}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, otherLeader.ID).Return(true, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, otherLeader)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), decision.IsTeamLeaderOfProject)
	assert.False(suite.T(), decision.CanManageProject)
	assert.False(suite.T(), decision.CanCloseProject)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_ActiveMember() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, suite.member.ID).Return(true, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, suite.member)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), decision.CanManageProject)
	assert.False(suite.T(), decision.CanCloseProject)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_NonMemberDenied() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, suite.member.ID).Return(false, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, suite.member)

	assert.Nil(suite.T(), decision)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectAccessDenied)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_CreatorHasAccess() {
	creator := auth.Identity{ID: suite.project.CreatedBy, Email: "creator@test.com", Role: models.UserRoleTeamMember}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)

	decision, err := suite.guard.CheckAccess(suite.project.ID, creator)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), decision.CanManageProject)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_ProjectNotFound() {
	missing := uuid.New()
	suite.mockProjectRepo.EXPECT().GetByID(missing).Return(nil, gorm.ErrRecordNotFound)

	decision, err := suite.guard.CheckAccess(missing, suite.manager)

	assert.Nil(suite.T(), decision)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func (suite *AccessGuardTestSuite) TestCheckAccess_RepositoryError() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(nil, errors.New("db failed"))

	decision, err := suite.guard.CheckAccess(suite.project.ID, suite.manager)

	assert.Nil(suite.T(), decision)
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func TestAccessGuardTestSuite(t *testing.T) {
	suite.Run(t, new(AccessGuardTestSuite))
}
