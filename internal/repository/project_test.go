//go:build integration
// +build integration

package repository

import (
	"testing"

	"makeitall-backend/internal/database/models"
	"makeitall-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// ProjectRepositoryTestSuite tests the ProjectRepository
type ProjectRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ProjectRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ProjectRepositoryTestSuite) createUser() *models.User {
	user := suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(user))
	return user
}

func (suite *ProjectRepositoryTestSuite) TestGetVisibleToUser_CreatorLeaderAndMember() {
	creator := suite.createUser()
	leader := suite.createUser()
	member := suite.createUser()
	outsider := suite.createUser()

	created := suite.factories.Project.WithCreator(creator.ID)
	created.TeamLeaderID = leader.ID
	suite.NoError(suite.repo.Create(created))

	joined := suite.factories.Project.WithCreator(leader.ID)
	joined.TeamLeaderID = leader.ID
	suite.NoError(suite.repo.Create(joined))

	membershipRepo := NewMembershipRepository(suite.baseTestSuite.DB)
	suite.NoError(membershipRepo.Create(suite.factories.Membership.Create(joined.ID, member.ID)))

	// Creator sees the project they created.
	projects, total, err := suite.repo.GetVisibleToUser(creator.ID, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(created.ID, projects[0].ID)

	// Leader sees both: one led, one created.
	_, total, err = suite.repo.GetVisibleToUser(leader.ID, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(2), total)

	// Member sees the project they actively belong to.
	projects, total, err = suite.repo.GetVisibleToUser(member.ID, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(joined.ID, projects[0].ID)

	// Outsider sees nothing.
	_, total, err = suite.repo.GetVisibleToUser(outsider.ID, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(0), total)
}

func (suite *ProjectRepositoryTestSuite) TestGetVisibleToUser_EndedMembershipHidesProject() {
	owner := suite.createUser()
	member := suite.createUser()

	project := suite.factories.Project.WithCreator(owner.ID)
	project.TeamLeaderID = owner.ID
	suite.NoError(suite.repo.Create(project))

	membershipRepo := NewMembershipRepository(suite.baseTestSuite.DB)
	suite.NoError(membershipRepo.Create(suite.factories.Membership.Create(project.ID, member.ID)))
	suite.NoError(membershipRepo.End(project.ID, member.ID))

	_, total, err := suite.repo.GetVisibleToUser(member.ID, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(0), total)
}

func (suite *ProjectRepositoryTestSuite) TestSetStatus_Archives() {
	owner := suite.createUser()
	project := suite.factories.Project.WithCreator(owner.ID)
	project.TeamLeaderID = owner.ID
	suite.NoError(suite.repo.Create(project))

	suite.NoError(suite.repo.SetStatus(project.ID, models.ProjectStatusArchived))

	loaded, err := suite.repo.GetByID(project.ID)
	suite.NoError(err)
	suite.True(loaded.IsArchived())
}

func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
