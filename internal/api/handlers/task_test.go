package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"makeitall-backend/internal/api/handlers"
	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"
	"makeitall-backend/internal/mocks"
	"makeitall-backend/internal/service"
	"makeitall-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockTaskService *mocks.MockTaskServiceInterface
	handler         *handlers.TaskHandler
	http            *testutils.HTTPTestSuite

	caller auth.Identity
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTaskService = mocks.NewMockTaskServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTaskHandler(suite.mockTaskService)
	suite.http = testutils.SetupHTTPTest()

	suite.caller = auth.Identity{ID: uuid.New(), Email: "leader@test.com", Role: models.UserRoleTeamLeader}

	// Inject the identity the way RequireAuth would after token validation.
	suite.http.Router.Use(func(c *gin.Context) {
		auth.SetCurrentUser(c, suite.caller)
		c.Next()
	})
	suite.http.Router.GET("/projects/:id/tasks", suite.handler.ListProjectTasks)
	suite.http.Router.POST("/projects/:id/tasks", suite.handler.CreateTask)
	suite.http.Router.GET("/tasks/assigned", suite.handler.ListAssignedTasks)
	suite.http.Router.PUT("/tasks/:id", suite.handler.UpdateTask)
	suite.http.Router.PATCH("/tasks/:id/status", suite.handler.UpdateStatus)
	suite.http.Router.PATCH("/tasks/:id/priority", suite.handler.UpdatePriority)
	suite.http.Router.POST("/tasks/:id/complete", suite.handler.MarkComplete)
	suite.http.Router.DELETE("/tasks/:id", suite.handler.DeleteTask)
}

func (suite *TaskHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TaskHandlerTestSuite) sampleTask() *service.TaskResponse {
	return &service.TaskResponse{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Name:      "Implement login",
		Status:    models.TaskStatusToDo,
		Priority:  models.TaskPriorityMedium,
	}
}

func (suite *TaskHandlerTestSuite) TestListProjectTasks_Success() {
	projectID := uuid.New()
	list := &service.TaskListResponse{Tasks: []service.TaskResponse{*suite.sampleTask()}, Total: 1}
	suite.mockTaskService.EXPECT().ListProjectTasks(projectID, suite.caller).Return(list, nil)

	recorder := suite.http.MakeRequest("GET", "/projects/"+projectID.String()+"/tasks", nil)

	var resp service.TaskListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	assert.Equal(suite.T(), 1, resp.Total)
}

func (suite *TaskHandlerTestSuite) TestListProjectTasks_InvalidID() {
	recorder := suite.http.MakeRequest("GET", "/projects/not-a-uuid/tasks", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "invalid project ID")
}

func (suite *TaskHandlerTestSuite) TestListProjectTasks_NonMemberForbidden() {
	projectID := uuid.New()
	suite.mockTaskService.EXPECT().ListProjectTasks(projectID, suite.caller).
		Return(nil, apperrors.ErrProjectAccessDenied)

	recorder := suite.http.MakeRequest("GET", "/projects/"+projectID.String()+"/tasks", nil)

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusForbidden, false)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	projectID := uuid.New()
	task := suite.sampleTask()
	deadline := time.Now().Add(48 * time.Hour)
	body := map[string]interface{}{
		"name":            "Implement login",
		"deadline":        deadline.Format(time.RFC3339),
		"assignee_emails": []string{"dev@test.com"},
	}
	suite.mockTaskService.EXPECT().Create(gomock.Any(), suite.caller).
		DoAndReturn(func(req *service.CreateTaskRequest, _ auth.Identity) (*service.TaskResponse, error) {
			assert.Equal(suite.T(), projectID, req.ProjectID)
			assert.Equal(suite.T(), "Implement login", req.Name)
			return task, nil
		})

	recorder := suite.http.MakeRequest("POST", "/projects/"+projectID.String()+"/tasks", body)

	envelope := testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusCreated, true)
	assert.Equal(suite.T(), task.ID.String(), envelope["task_id"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneesNotMembersConflict() {
	projectID := uuid.New()
	deadline := time.Now().Add(48 * time.Hour)
	body := map[string]interface{}{
		"name":            "Implement login",
		"deadline":        deadline.Format(time.RFC3339),
		"assignee_emails": []string{"outsider@test.com"},
	}
	suite.mockTaskService.EXPECT().Create(gomock.Any(), suite.caller).
		Return(nil, &apperrors.AssigneesNotMembersError{Emails: []string{"outsider@test.com"}})

	recorder := suite.http.MakeRequest("POST", "/projects/"+projectID.String()+"/tasks", body)

	envelope := testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusConflict, false)
	missing, ok := envelope["missing_members"].([]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "outsider@test.com", missing[0])
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_Success() {
	task := suite.sampleTask()
	task.Status = models.TaskStatusReview
	suite.mockTaskService.EXPECT().UpdateStatus(task.ID, "review", suite.caller).Return(task, nil)

	recorder := suite.http.MakeRequest("PATCH", "/tasks/"+task.ID.String()+"/status", map[string]string{"new_status": "review"})

	envelope := testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusOK, true)
	raw, err := json.Marshal(envelope["task"])
	assert.NoError(suite.T(), err)
	var got service.TaskResponse
	assert.NoError(suite.T(), json.Unmarshal(raw, &got))
	assert.Equal(suite.T(), models.TaskStatusReview, got.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_MissingBodyRejected() {
	recorder := suite.http.MakeRequest("PATCH", "/tasks/"+uuid.New().String()+"/status", map[string]string{})

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusBadRequest, false)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_SelfCompleteDeniedForbidden() {
	taskID := uuid.New()
	suite.mockTaskService.EXPECT().UpdateStatus(taskID, "completed", suite.caller).
		Return(nil, apperrors.ErrSelfCompleteDenied)

	recorder := suite.http.MakeRequest("PATCH", "/tasks/"+taskID.String()+"/status", map[string]string{"new_status": "completed"})

	envelope := testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusForbidden, false)
	assert.Contains(suite.T(), envelope["message"], "review")
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_UnknownStatusBadRequest() {
	taskID := uuid.New()
	suite.mockTaskService.EXPECT().UpdateStatus(taskID, "blocked", suite.caller).
		Return(nil, &apperrors.ValidationError{Field: "new_status", Message: "unrecognized status value"})

	recorder := suite.http.MakeRequest("PATCH", "/tasks/"+taskID.String()+"/status", map[string]string{"new_status": "blocked"})

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusBadRequest, false)
}

func (suite *TaskHandlerTestSuite) TestMarkComplete_Success() {
	task := suite.sampleTask()
	task.Status = models.TaskStatusReview
	suite.mockTaskService.EXPECT().MarkComplete(task.ID, suite.caller).Return(task, nil)

	recorder := suite.http.MakeRequest("POST", "/tasks/"+task.ID.String()+"/complete", nil)

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusOK, true)
}

func (suite *TaskHandlerTestSuite) TestUpdatePriority_Forbidden() {
	taskID := uuid.New()
	suite.mockTaskService.EXPECT().UpdatePriority(taskID, "high", suite.caller).
		Return(nil, apperrors.ErrManageRightsNeeded)

	recorder := suite.http.MakeRequest("PATCH", "/tasks/"+taskID.String()+"/priority", map[string]string{"priority": "high"})

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusForbidden, false)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	taskID := uuid.New()
	suite.mockTaskService.EXPECT().Delete(taskID, suite.caller).Return(nil)

	recorder := suite.http.MakeRequest("DELETE", "/tasks/"+taskID.String(), nil)

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusOK, true)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	taskID := uuid.New()
	suite.mockTaskService.EXPECT().Delete(taskID, suite.caller).Return(apperrors.ErrTaskNotFound)

	recorder := suite.http.MakeRequest("DELETE", "/tasks/"+taskID.String(), nil)

	testutils.AssertEnvelopeResponse(suite.T(), recorder, http.StatusNotFound, false)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
