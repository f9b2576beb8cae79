package service_test

import (
	"testing"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/mocks"
	"makeitall-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockProjectRepo    *mocks.MockProjectRepositoryInterface
	mockMembershipRepo *mocks.MockMembershipRepositoryInterface
	mockUserRepo       *mocks.MockUserRepositoryInterface
	projectService     *service.ProjectService
	validator          *validator.Validate

	project *models.Project
	manager auth.Identity
	leader  auth.Identity
	member  auth.Identity
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProjectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.mockMembershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	guard := service.NewAccessGuard(suite.mockProjectRepo, suite.mockMembershipRepo)
	suite.projectService = service.NewProjectService(
		suite.mockProjectRepo,
		suite.mockMembershipRepo,
		suite.mockUserRepo,
		guard,
		suite.validator,
	)

	leaderID := uuid.New()
	suite.project = &models.Project{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Phoenix",
		Status:       models.ProjectStatusActive,
		CreatedBy:    uuid.New(),
		TeamLeaderID: leaderID,
	}
	suite.manager = auth.Identity{ID: uuid.New(), Email: "manager@test.com", Role: models.UserRoleManager}
	suite.leader = auth.Identity{ID: leaderID, Email: "leader@test.com", Role: models.UserRoleTeamLeader}
	suite.member = auth.Identity{ID: uuid.New(), Email: "member@test.com", Role: models.UserRoleTeamMember}
}

func (suite *ProjectServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ProjectServiceTestSuite) TestCreateProject_ManagerSuccess() {
	leaderUser := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "lead@test.com", Name: "Lead"}
	req := &service.CreateProjectRequest{
		Name:            "Atlas",
		Description:     "Inventory rework",
		Priority:        "high",
		TeamLeaderEmail: leaderUser.Email,
	}

	suite.mockUserRepo.EXPECT().GetByEmail(leaderUser.Email).Return(leaderUser, nil)
	suite.mockProjectRepo.EXPECT().Create(gomock.Any()).
		DoAndReturn(func(p *models.Project) error {
			assert.Equal(suite.T(), models.ProjectStatusActive, p.Status)
			assert.Equal(suite.T(), leaderUser.ID, p.TeamLeaderID)
			assert.Equal(suite.T(), suite.manager.ID, p.CreatedBy)
			p.ID = uuid.New()
			return nil
		})
	suite.mockMembershipRepo.EXPECT().Create(gomock.Any()).
		DoAndReturn(func(m *models.ProjectMembership) error {
			assert.Equal(suite.T(), leaderUser.ID, m.UserID)
			assert.Equal(suite.T(), models.ProjectRoleTeamLeader, m.Role)
			return nil
		})

	resp, err := suite.projectService.Create(req, suite.manager)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Atlas", resp.Name)
	assert.Equal(suite.T(), models.TaskPriorityHigh, resp.Priority)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_NonManagerDenied() {
	req := &service.CreateProjectRequest{
		Name:            "Atlas",
		TeamLeaderEmail: "lead@test.com",
	}

	resp, err := suite.projectService.Create(req, suite.leader)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrManageRightsNeeded)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_UnknownLeaderRejected() {
	req := &service.CreateProjectRequest{
		Name:            "Atlas",
		TeamLeaderEmail: "ghost@test.com",
	}
	suite.mockUserRepo.EXPECT().GetByEmail("ghost@test.com").Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.projectService.Create(req, suite.manager)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_MissingNameFailsValidation() {
	req := &service.CreateProjectRequest{TeamLeaderEmail: "lead@test.com"}

	resp, err := suite.projectService.Create(req, suite.manager)

	assert.Nil(suite.T(), resp)
	assert.Error(suite.T(), err)
}

func (suite *ProjectServiceTestSuite) TestListProjects_ManagerSeesAll() {
	projects := []models.Project{*suite.project}
	suite.mockProjectRepo.EXPECT().GetAll(20, 0).Return(projects, int64(1), nil)

	resp, err := suite.projectService.List(suite.manager, 1, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), resp.Total)
}

func (suite *ProjectServiceTestSuite) TestListProjects_MemberSeesVisibleOnly() {
	projects := []models.Project{*suite.project}
	suite.mockProjectRepo.EXPECT().GetVisibleToUser(suite.member.ID, 20, 0).Return(projects, int64(1), nil)

	resp, err := suite.projectService.List(suite.member, 0, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Projects, 1)
}

func (suite *ProjectServiceTestSuite) TestCloseProject_ManagerSucceeds() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockProjectRepo.EXPECT().SetStatus(suite.project.ID, models.ProjectStatusArchived).Return(nil)

	resp, err := suite.projectService.Close(suite.project.ID, suite.manager)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ProjectStatusArchived, resp.Status)
}

func (suite *ProjectServiceTestSuite) TestCloseProject_TeamLeaderDenied() {
	// Leading a project grants manage rights, not the close capability.
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)

	resp, err := suite.projectService.Close(suite.project.ID, suite.leader)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrCloseRightsNeeded)
}

func (suite *ProjectServiceTestSuite) TestAddMember_LeaderSucceeds() {
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "new@test.com", Name: "New"}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, user.ID).Return(false, nil)
	suite.mockMembershipRepo.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := suite.projectService.AddMember(suite.project.ID, user.Email, suite.leader)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, resp.UserID)
	assert.Equal(suite.T(), models.ProjectRoleMember, resp.Role)
}

func (suite *ProjectServiceTestSuite) TestAddMember_ExistingActiveMemberRejected() {
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "dup@test.com"}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, user.ID).Return(true, nil)

	resp, err := suite.projectService.AddMember(suite.project.ID, user.Email, suite.manager)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrMembershipExists)
}

func (suite *ProjectServiceTestSuite) TestAddMember_MemberCallerDenied() {
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockMembershipRepo.EXPECT().HasActive(suite.project.ID, suite.member.ID).Return(true, nil)

	resp, err := suite.projectService.AddMember(suite.project.ID, "new@test.com", suite.member)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrManageRightsNeeded)
}

func (suite *ProjectServiceTestSuite) TestRemoveMember_EndsMembership() {
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "out@test.com"}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)
	suite.mockMembershipRepo.EXPECT().End(suite.project.ID, user.ID).Return(nil)

	err := suite.projectService.RemoveMember(suite.project.ID, user.Email, suite.manager)

	assert.NoError(suite.T(), err)
}

func (suite *ProjectServiceTestSuite) TestRemoveMember_NoActiveMembership() {
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "out@test.com"}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockUserRepo.EXPECT().GetByEmail(user.Email).Return(user, nil)
	suite.mockMembershipRepo.EXPECT().End(suite.project.ID, user.ID).Return(gorm.ErrRecordNotFound)

	err := suite.projectService.RemoveMember(suite.project.ID, user.Email, suite.manager)

	assert.ErrorIs(suite.T(), err, apperrors.ErrMembershipNotFound)
}

func (suite *ProjectServiceTestSuite) TestListMembers_ReturnsActiveMembers() {
	memberships := []models.ProjectMembership{
		{
			ProjectID: suite.project.ID,
			UserID:    suite.member.ID,
			Role:      models.ProjectRoleMember,
			User:      models.User{BaseModel: models.BaseModel{ID: suite.member.ID}, Email: suite.member.Email, Name: "Member"},
		},
	}
	suite.mockProjectRepo.EXPECT().GetByID(suite.project.ID).Return(suite.project, nil)
	suite.mockMembershipRepo.EXPECT().ListActiveByProject(suite.project.ID).Return(memberships, nil)

	resp, err := suite.projectService.ListMembers(suite.project.ID, suite.manager)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp, 1)
	assert.Equal(suite.T(), suite.member.Email, resp[0].Email)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
