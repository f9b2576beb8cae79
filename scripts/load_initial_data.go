package main

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"os"

	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/config"
	"makeitall-backend/internal/database"
	"makeitall-backend/internal/database/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Email     string `yaml:"email"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url,omitempty"`
	Role      string `yaml:"role"`
	Password  string `yaml:"password"`
	IsActive  bool   `yaml:"is_active"`
}

type ProjectData struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Status          string `yaml:"status"`
	Priority        string `yaml:"priority,omitempty"`
	Deadline        string `yaml:"deadline,omitempty"`
	CreatorEmail    string `yaml:"creator_email"`
	TeamLeaderEmail string `yaml:"team_leader_email"`
}

type MembershipData struct {
	ProjectName string `yaml:"project_name"`
	UserEmail   string `yaml:"user_email"`
	Role        string `yaml:"role"`
}

type TaskData struct {
	ProjectName    string   `yaml:"project_name"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Status         string   `yaml:"status"`
	Priority       string   `yaml:"priority"`
	Deadline       string   `yaml:"deadline"`
	CreatorEmail   string   `yaml:"creator_email"`
	AssigneeEmails []string `yaml:"assignee_emails,omitempty"`
}

// File structures
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type ProjectsFile struct {
	Projects []ProjectData `yaml:"projects"`
}

type MembershipsFile struct {
	Memberships []MembershipData `yaml:"memberships"`
}

type TasksFile struct {
	Tasks []TaskData `yaml:"tasks"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Configure database options to suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent, // Suppress all GORM logs including SQL queries and "record not found"
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	// Load all data from YAML files
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	projects, err := loadProjects(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	memberships, err := loadMemberships(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load memberships: %w", err)
	}

	tasks, err := loadTasks(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	// Create users first
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	// Create projects
	projectMap := make(map[string]*models.Project)
	projectCreated := 0
	for _, projectData := range projects {
		project, created, err := createProject(db, projectData, userMap)
		if err != nil {
			return fmt.Errorf("failed to create project %s: %w", projectData.Name, err)
		}
		projectMap[projectData.Name] = project
		if created {
			projectCreated++
		}
	}
	log.Printf("📋 Projects: %d created, %d total", projectCreated, len(projects))

	// Create memberships
	membershipCreated := 0
	for _, membershipData := range memberships {
		_, created, err := createMembership(db, membershipData, projectMap, userMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create membership %s/%s: %v", membershipData.ProjectName, membershipData.UserEmail, err)
			continue // Continue with other memberships
		}
		if created {
			membershipCreated++
		}
	}
	log.Printf("📋 Memberships: %d created, %d total", membershipCreated, len(memberships))

	// Create tasks with their assignments
	taskCreated := 0
	for _, taskData := range tasks {
		_, created, err := createTask(db, taskData, projectMap, userMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create task %s: %v", taskData.Name, err)
			continue // Continue with other tasks
		}
		if created {
			taskCreated++
		}
	}
	log.Printf("📋 Tasks: %d created, %d total", taskCreated, len(tasks))

	return nil
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "users") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func loadProjects(dataDir string) ([]ProjectData, error) {
	var allProjects []ProjectData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "projects") {
			var file ProjectsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allProjects = append(allProjects, file.Projects...)
		}
		return nil
	})

	return allProjects, err
}

func loadMemberships(dataDir string) ([]MembershipData, error) {
	var allMemberships []MembershipData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "memberships") {
			var file MembershipsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allMemberships = append(allMemberships, file.Memberships...)
		}
		return nil
	})

	return allMemberships, err
}

func loadTasks(dataDir string) ([]TaskData, error) {
	var allTasks []TaskData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "tasks") {
			var file TasksFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allTasks = append(allTasks, file.Tasks...)
		}
		return nil
	})

	return allTasks, err
}

func createUser(db *gorm.DB, userData UserData) (*models.User, bool, error) {
	var user models.User
	if err := db.Where("email = ?", userData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hash, err := auth.HashPassword(userData.Password)
			if err != nil {
				return nil, false, fmt.Errorf("failed to hash password: %w", err)
			}

			role := models.UserRole(userData.Role)
			if !role.IsValid() {
				role = models.UserRoleTeamMember
			}

			user = models.User{
				Email:        userData.Email,
				Name:         userData.Name,
				AvatarURL:    userData.AvatarURL,
				Role:         role,
				PasswordHash: hash,
				IsActive:     userData.IsActive,
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query user: %w", err)
		}
	}

	return &user, false, nil // created = false (existing)
}

func createProject(db *gorm.DB, projectData ProjectData, userMap map[string]*models.User) (*models.Project, bool, error) {
	creator := userMap[projectData.CreatorEmail]
	if creator == nil {
		return nil, false, fmt.Errorf("creator %s not found for project %s", projectData.CreatorEmail, projectData.Name)
	}
	leader := userMap[projectData.TeamLeaderEmail]
	if leader == nil {
		return nil, false, fmt.Errorf("team leader %s not found for project %s", projectData.TeamLeaderEmail, projectData.Name)
	}

	var project models.Project
	if err := db.Where("name = ?", projectData.Name).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			status := models.ProjectStatus(projectData.Status)
			if !status.IsValid() {
				status = models.ProjectStatusActive
			}

			deadline, err := parseDeadline(projectData.Deadline)
			if err != nil {
				return nil, false, fmt.Errorf("failed to parse deadline for project %s: %w", projectData.Name, err)
			}

			project = models.Project{
				Name:         projectData.Name,
				Description:  projectData.Description,
				Status:       status,
				Priority:     models.NormalizeTaskPriority(projectData.Priority),
				Deadline:     deadline,
				CreatedBy:    creator.ID,
				TeamLeaderID: leader.ID,
			}

			if err := db.Create(&project).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create project: %w", err)
			}

			// The team leader always holds an active leader membership.
			leaderMembership := models.ProjectMembership{
				ProjectID: project.ID,
				UserID:    leader.ID,
				Role:      models.ProjectRoleTeamLeader,
				JoinedAt:  time.Now().UTC(),
			}
			if err := db.Create(&leaderMembership).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create leader membership: %w", err)
			}

			return &project, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query project: %w", err)
		}
	}

	return &project, false, nil // created = false (existing)
}

func createMembership(db *gorm.DB, membershipData MembershipData, projectMap map[string]*models.Project, userMap map[string]*models.User) (*models.ProjectMembership, bool, error) {
	project := projectMap[membershipData.ProjectName]
	if project == nil {
		return nil, false, fmt.Errorf("project %s not found", membershipData.ProjectName)
	}
	user := userMap[membershipData.UserEmail]
	if user == nil {
		return nil, false, fmt.Errorf("user %s not found", membershipData.UserEmail)
	}

	var membership models.ProjectMembership
	err := db.Where("project_id = ? AND user_id = ? AND left_at IS NULL", project.ID, user.ID).First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			role := models.ProjectRole(membershipData.Role)
			if role != models.ProjectRoleTeamLeader {
				role = models.ProjectRoleMember
			}

			membership = models.ProjectMembership{
				ProjectID: project.ID,
				UserID:    user.ID,
				Role:      role,
				JoinedAt:  time.Now().UTC(),
			}

			if err := db.Create(&membership).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create membership: %w", err)
			}
			return &membership, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query membership: %w", err)
		}
	}

	return &membership, false, nil // created = false (existing)
}

func createTask(db *gorm.DB, taskData TaskData, projectMap map[string]*models.Project, userMap map[string]*models.User) (*models.Task, bool, error) {
	project := projectMap[taskData.ProjectName]
	if project == nil {
		return nil, false, fmt.Errorf("project %s not found", taskData.ProjectName)
	}
	creator := userMap[taskData.CreatorEmail]
	if creator == nil {
		return nil, false, fmt.Errorf("creator %s not found", taskData.CreatorEmail)
	}

	var task models.Task
	err := db.Where("project_id = ? AND name = ?", project.ID, taskData.Name).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			deadline, err := parseDeadline(taskData.Deadline)
			if err != nil {
				return nil, false, fmt.Errorf("failed to parse deadline for task %s: %w", taskData.Name, err)
			}

			var assigneeIDs []uuid.UUID
			for _, email := range taskData.AssigneeEmails {
				assignee := userMap[email]
				if assignee == nil {
					return nil, false, fmt.Errorf("assignee %s not found", email)
				}
				assigneeIDs = append(assigneeIDs, assignee.ID)
			}

			task = models.Task{
				ProjectID:   project.ID,
				Name:        taskData.Name,
				Description: taskData.Description,
				Status:      models.NormalizeTaskStatus(taskData.Status),
				Priority:    models.NormalizeTaskPriority(taskData.Priority),
				Deadline:    deadline,
				CreatedBy:   creator.ID,
			}

			if err := db.Create(&task).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create task: %w", err)
			}

			for _, userID := range assigneeIDs {
				assignment := models.TaskAssignment{TaskID: task.ID, UserID: userID}
				if err := db.Create(&assignment).Error; err != nil {
					return nil, false, fmt.Errorf("failed to create assignment: %w", err)
				}
			}

			return &task, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query task: %w", err)
		}
	}

	return &task, false, nil // created = false (existing)
}

func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
