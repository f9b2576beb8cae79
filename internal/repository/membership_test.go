//go:build integration
// +build integration

package repository

import (
	"testing"

	"makeitall-backend/internal/database/models"
	"makeitall-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MembershipRepositoryTestSuite tests the MembershipRepository
type MembershipRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MembershipRepository
	factories     *testutils.FactorySet

	user    *models.User
	project *models.Project
}

// SetupSuite runs before all tests in the suite
func (suite *MembershipRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewMembershipRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *MembershipRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MembershipRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.user = suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(suite.user))

	suite.project = suite.factories.Project.WithCreator(suite.user.ID)
	suite.project.TeamLeaderID = suite.user.ID
	suite.NoError(NewProjectRepository(suite.baseTestSuite.DB).Create(suite.project))
}

// TearDownTest runs after each test
func (suite *MembershipRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *MembershipRepositoryTestSuite) TestHasActive_LifeCycle() {
	member := suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(member))

	active, err := suite.repo.HasActive(suite.project.ID, member.ID)
	suite.NoError(err)
	suite.False(active)

	membership := suite.factories.Membership.Create(suite.project.ID, member.ID)
	suite.NoError(suite.repo.Create(membership))

	active, err = suite.repo.HasActive(suite.project.ID, member.ID)
	suite.NoError(err)
	suite.True(active)

	suite.NoError(suite.repo.End(suite.project.ID, member.ID))

	active, err = suite.repo.HasActive(suite.project.ID, member.ID)
	suite.NoError(err)
	suite.False(active)
}

func (suite *MembershipRepositoryTestSuite) TestEnd_KeepsHistoryRow() {
	member := suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(member))

	membership := suite.factories.Membership.Create(suite.project.ID, member.ID)
	suite.NoError(suite.repo.Create(membership))
	suite.NoError(suite.repo.End(suite.project.ID, member.ID))

	var row models.ProjectMembership
	err := suite.baseTestSuite.DB.First(&row, "project_id = ? AND user_id = ?", suite.project.ID, member.ID).Error
	suite.NoError(err)
	suite.NotNil(row.LeftAt)
}

func (suite *MembershipRepositoryTestSuite) TestEnd_NoActiveMembership() {
	err := suite.repo.End(suite.project.ID, uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *MembershipRepositoryTestSuite) TestListActiveByProject_ExcludesEnded() {
	first := suite.factories.User.Create()
	second := suite.factories.User.Create()
	userRepo := NewUserRepository(suite.baseTestSuite.DB)
	suite.NoError(userRepo.Create(first))
	suite.NoError(userRepo.Create(second))

	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(suite.project.ID, first.ID)))
	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(suite.project.ID, second.ID)))
	suite.NoError(suite.repo.End(suite.project.ID, second.ID))

	memberships, err := suite.repo.ListActiveByProject(suite.project.ID)
	suite.NoError(err)
	suite.Len(memberships, 1)
	suite.Equal(first.ID, memberships[0].UserID)
	suite.Equal(first.Email, memberships[0].User.Email)
}

func TestMembershipRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipRepositoryTestSuite))
}
