package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	m "github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed data
var (
	TestAdminUser      m.User
	TestJobseeker1     m.User
	TestJobseeker2     m.User
	TestJobseekerNoCV  m.User
	TestResume1        m.Resume
	TestResume2        m.Resume
	TestJobActive      m.Job
	TestJobActive2     m.Job
	TestJobInactive    m.Job
	TestJobExpired     m.Job
	TestSeedPassword   = "SeedPass123!"
	TestSeedResumeText = "Senior Go engineer. Skills: go, postgresql, docker, kubernetes, grpc. 6 years building backend services."
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		UseConstr: true,
		DBName:    dbName,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts users, resumes and jobs when the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	userSpecs := []struct {
		email, first, last, role string
		skills                   []string
		dst                      *m.User
	}{
		{"admin@example.com", "Ada", "Admin", m.RoleAdmin, nil, &TestAdminUser},
		{"alice@example.com", "Alice", "Nguyen", m.RoleJobseeker, []string{"go", "postgresql"}, &TestJobseeker1},
		{"bob@example.com", "Bob", "Somsak", m.RoleJobseeker, []string{"react", "typescript"}, &TestJobseeker2},
		{"carol@example.com", "Carol", "Diaz", m.RoleJobseeker, nil, &TestJobseekerNoCV},
	}

	for _, s := range userSpecs {
		u := m.User{
			ID:       uuid.New(),
			Email:    s.email,
			Password: hashedPwd,
			Role:     s.role,
			IsActive: true,
			EditableProfile: m.EditableProfile{
				FirstName: s.first,
				LastName:  s.last,
				Skills:    pq.StringArray(s.skills),
			},
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		*s.dst = u
	}

	resumes := []struct {
		owner m.User
		name  string
		text  string
		dst   *m.Resume
	}{
		{TestJobseeker1, "alice_cv.pdf", TestSeedResumeText, &TestResume1},
		{TestJobseeker2, "bob_cv.pdf", "Frontend developer. Skills: react, typescript, css, figma. 3 years.", &TestResume2},
	}
	for _, r := range resumes {
		resume := m.Resume{
			UserID:       r.owner.ID,
			FileName:     r.name,
			OriginalName: r.name,
			FileType:     m.ResumeTypePDF,
			FileSize:     int64(len(r.text)),
			Content:      []byte(r.text),
			RawText:      r.text,
			IsPrimary:    true,
			IsActive:     true,
		}
		if err := db.Create(&resume).Error; err != nil {
			return err
		}
		*r.dst = resume
	}

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	minSalary, maxSalary := 90000, 140000

	jobs := []struct {
		info     m.EditableJobInfo
		isActive bool
		closedAt *time.Time
		dst      *m.Job
	}{
		{
			info: m.EditableJobInfo{
				Title:           "Backend Engineer",
				Company:         "TechNova",
				Location:        "Bangkok",
				LocationType:    m.LocationHybrid,
				Type:            m.JobTypeFullTime,
				ExperienceLevel: m.ExperienceSenior,
				Salary:          m.Salary{Min: &minSalary, Max: &maxSalary, Currency: "USD", Period: m.SalaryYearly, IsVisible: true},
				Description:     "Build Go microservices on PostgreSQL and Kubernetes.",
				Requirements:    pq.StringArray{"5+ years Go", "SQL"},
				Skills:          pq.StringArray{"go", "postgresql", "kubernetes"},
				Category:        "engineering",
			},
			isActive: true,
			dst:      &TestJobActive,
		},
		{
			info: m.EditableJobInfo{
				Title:           "Frontend Developer",
				Company:         "DataForge",
				Location:        "Remote",
				LocationType:    m.LocationRemote,
				Type:            m.JobTypeContract,
				ExperienceLevel: m.ExperienceMid,
				Salary:          m.Salary{Currency: "USD", Period: m.SalaryYearly},
				Description:     "Own the React component library.",
				Skills:          pq.StringArray{"react", "typescript"},
				Category:        "engineering",
			},
			isActive: true,
			dst:      &TestJobActive2,
		},
		{
			info: m.EditableJobInfo{
				Title:           "Data Analyst",
				Company:         "DataForge",
				Location:        "Chiang Mai",
				LocationType:    m.LocationOnsite,
				Type:            m.JobTypeFullTime,
				ExperienceLevel: m.ExperienceEntry,
				Salary:          m.Salary{Currency: "USD", Period: m.SalaryYearly},
				Description:     "Dashboards and SQL.",
				Skills:          pq.StringArray{"sql"},
			},
			isActive: false,
			closedAt: &past,
			dst:      &TestJobInactive,
		},
		{
			info: m.EditableJobInfo{
				Title:           "Site Reliability Engineer",
				Company:         "TechNova",
				Location:        "Singapore",
				LocationType:    m.LocationOnsite,
				Type:            m.JobTypeFullTime,
				ExperienceLevel: m.ExperienceLead,
				Salary:          m.Salary{Currency: "USD", Period: m.SalaryYearly},
				Description:     "Keep production healthy.",
				Skills:          pq.StringArray{"kubernetes", "terraform"},
				ExpiresAt:       &past,
			},
			isActive: true,
			dst:      &TestJobExpired,
		},
	}

	for _, j := range jobs {
		job := m.Job{
			RecruiterID:     TestAdminUser.ID,
			EditableJobInfo: j.info,
			IsActive:        j.isActive,
			PostedAt:        now,
			ClosedAt:        j.closedAt,
		}
		if err := db.Create(&job).Error; err != nil {
			return err
		}
		*j.dst = job
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	byEmail := map[string]*m.User{
		"admin@example.com": &TestAdminUser,
		"alice@example.com": &TestJobseeker1,
		"bob@example.com":   &TestJobseeker2,
		"carol@example.com": &TestJobseekerNoCV,
	}
	for email, dst := range byEmail {
		if err := db.Where("email = ?", email).First(dst).Error; err != nil {
			return err
		}
	}

	if err := db.Where("user_id = ? AND is_primary = ?", TestJobseeker1.ID, true).First(&TestResume1).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ? AND is_primary = ?", TestJobseeker2.ID, true).First(&TestResume2).Error; err != nil {
		return err
	}

	byTitle := map[string]*m.Job{
		"Backend Engineer":          &TestJobActive,
		"Frontend Developer":        &TestJobActive2,
		"Data Analyst":              &TestJobInactive,
		"Site Reliability Engineer": &TestJobExpired,
	}
	for title, dst := range byTitle {
		if err := db.Unscoped().Where("title = ?", title).First(dst).Error; err != nil {
			return err
		}
	}
	return nil
}

