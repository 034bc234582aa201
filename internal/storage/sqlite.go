// Package storage persists users, the job/resource catalog, and roadmaps in
// SQLite. Skill lists and roadmap phases are stored as JSON text columns.
package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/skillbridge/skillbridge/internal/catalog"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const defaultPageSize = 20

// Store wraps a SQLite database with methods for users, catalog, and roadmaps.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used by
// tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "skillbridge.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

// --- Users ---

func (s *Store) CreateUser(u User) error {
	skills, err := marshalStrings(u.Skills)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO users (id, full_name, email, password_hash, education, department,
			experience_level, preferred_track, skills, cv_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Education, u.Department,
		string(u.ExperienceLevel), u.PreferredTrack, skills, u.CVText,
		u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
		return ErrEmailTaken
	}
	return err
}

const userColumns = `id, full_name, email, password_hash, education, department,
	experience_level, preferred_track, skills, cv_text, created_at`

func (s *Store) scanUser(row *sql.Row) (User, error) {
	var u User
	var level, skills, createdAt string
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Education,
		&u.Department, &level, &u.PreferredTrack, &skills, &u.CVText, &createdAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.ExperienceLevel = catalog.ExperienceLevel(level)
	if err := json.Unmarshal([]byte(skills), &u.Skills); err != nil {
		return User{}, fmt.Errorf("parsing skills for user %s: %w", u.ID, err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return User{}, fmt.Errorf("parsing created_at for user %s: %w", u.ID, err)
	}
	return u, nil
}

func (s *Store) GetUser(id string) (User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (s *Store) GetUserByEmail(email string) (User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// UpdateUserProfile applies a partial update and returns the updated user.
func (s *Store) UpdateUserProfile(id string, upd ProfileUpdate) (User, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Education != nil {
		add("education", *upd.Education)
	}
	if upd.Department != nil {
		add("department", *upd.Department)
	}
	if upd.ExperienceLevel != nil {
		add("experience_level", string(*upd.ExperienceLevel))
	}
	if upd.PreferredTrack != nil {
		add("preferred_track", *upd.PreferredTrack)
	}
	if upd.Skills != nil {
		skills, err := marshalStrings(*upd.Skills)
		if err != nil {
			return User{}, err
		}
		add("skills", skills)
	}
	if upd.CVText != nil {
		add("cv_text", *upd.CVText)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return User{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return User{}, err
		}
		if n == 0 {
			return User{}, ErrNotFound
		}
	}
	return s.GetUser(id)
}

// --- Jobs ---

func (s *Store) InsertJob(j catalog.Job) error {
	skills, err := marshalStrings(j.RequiredSkills)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO jobs (id, title, company, location, required_skills,
			recommended_experience, job_type, description, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Company, j.Location, skills,
		j.RecommendedExperience, j.JobType, j.Description,
		j.PostedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListJobs returns one page of jobs matching the filter, newest first, plus
// the total match count for pagination.
func (s *Store) ListJobs(f JobFilter) ([]catalog.Job, int, error) {
	var where []string
	var args []any

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, like, like, like)
	}
	if f.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	if f.JobType != "" {
		where = append(where, "job_type = ?")
		args = append(args, f.JobType)
	}
	if f.Skill != "" {
		where = append(where, "LOWER(required_skills) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Skill)+"%")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting jobs: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	query := `SELECT id, title, company, location, required_skills, recommended_experience,
		job_type, description, posted_at FROM jobs` + clause + ` ORDER BY posted_at DESC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []catalog.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// AllJobs returns the entire job catalog, newest first.
func (s *Store) AllJobs() ([]catalog.Job, error) {
	rows, err := s.db.Query(`SELECT id, title, company, location, required_skills,
		recommended_experience, job_type, description, posted_at
		FROM jobs ORDER BY posted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []catalog.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) GetJob(id string) (catalog.Job, error) {
	rows, err := s.db.Query(`SELECT id, title, company, location, required_skills,
		recommended_experience, job_type, description, posted_at
		FROM jobs WHERE id = ?`, id)
	if err != nil {
		return catalog.Job{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return catalog.Job{}, err
		}
		return catalog.Job{}, ErrNotFound
	}
	return scanJob(rows)
}

func scanJob(rows *sql.Rows) (catalog.Job, error) {
	var j catalog.Job
	var skills, postedAt string
	if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &skills,
		&j.RecommendedExperience, &j.JobType, &j.Description, &postedAt); err != nil {
		return catalog.Job{}, err
	}
	if err := json.Unmarshal([]byte(skills), &j.RequiredSkills); err != nil {
		return catalog.Job{}, fmt.Errorf("parsing required skills for job %s: %w", j.ID, err)
	}
	var err error
	if j.PostedAt, err = time.Parse(time.RFC3339, postedAt); err != nil {
		return catalog.Job{}, fmt.Errorf("parsing posted_at for job %s: %w", j.ID, err)
	}
	return j, nil
}

// --- Resources ---

func (s *Store) InsertResource(r catalog.Resource) error {
	skills, err := marshalStrings(r.RelatedSkills)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO resources (id, title, platform, url, related_skills, cost_type, price, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Platform, r.URL, skills, string(r.CostType), r.Price, r.Description,
	)
	return err
}

// AllResources returns every learning resource in insertion order.
func (s *Store) AllResources() ([]catalog.Resource, error) {
	rows, err := s.db.Query(`SELECT id, title, platform, url, related_skills, cost_type, price, description
		FROM resources ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []catalog.Resource
	for rows.Next() {
		var r catalog.Resource
		var skills, costType string
		if err := rows.Scan(&r.ID, &r.Title, &r.Platform, &r.URL, &skills, &costType, &r.Price, &r.Description); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(skills), &r.RelatedSkills); err != nil {
			return nil, fmt.Errorf("parsing related skills for resource %s: %w", r.ID, err)
		}
		r.CostType = catalog.CostType(costType)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// --- Roadmaps ---

func (s *Store) SaveRoadmap(r Roadmap) error {
	phases, err := json.Marshal(r.Phases)
	if err != nil {
		return fmt.Errorf("marshalling phases: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO roadmaps (id, user_id, target_role, timeframe_months,
			learning_hours_per_week, phases, current_phase, progress, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.TargetRole, r.TimeframeMonths, r.LearningHoursPerWeek,
		string(phases), r.CurrentPhase, r.Progress, r.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

const roadmapColumns = `id, user_id, target_role, timeframe_months,
	learning_hours_per_week, phases, current_phase, progress, created_at`

func (s *Store) scanRoadmap(row *sql.Row) (Roadmap, error) {
	var r Roadmap
	var phases, createdAt string
	err := row.Scan(&r.ID, &r.UserID, &r.TargetRole, &r.TimeframeMonths,
		&r.LearningHoursPerWeek, &phases, &r.CurrentPhase, &r.Progress, &createdAt)
	if err == sql.ErrNoRows {
		return Roadmap{}, ErrNotFound
	}
	if err != nil {
		return Roadmap{}, err
	}
	if err := json.Unmarshal([]byte(phases), &r.Phases); err != nil {
		return Roadmap{}, fmt.Errorf("parsing phases for roadmap %s: %w", r.ID, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Roadmap{}, fmt.Errorf("parsing created_at for roadmap %s: %w", r.ID, err)
	}
	return r, nil
}

// LatestRoadmap returns the user's most recently created roadmap.
func (s *Store) LatestRoadmap(userID string) (Roadmap, error) {
	return s.scanRoadmap(s.db.QueryRow(`SELECT `+roadmapColumns+` FROM roadmaps
		WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, userID))
}

// GetRoadmap returns the roadmap with the given id if it belongs to the user.
func (s *Store) GetRoadmap(id, userID string) (Roadmap, error) {
	return s.scanRoadmap(s.db.QueryRow(`SELECT `+roadmapColumns+` FROM roadmaps
		WHERE id = ? AND user_id = ?`, id, userID))
}

// UpdateRoadmapProgress updates current phase and/or progress; nil leaves a
// field untouched. Returns the updated roadmap.
func (s *Store) UpdateRoadmapProgress(id, userID string, currentPhase, progress *int) (Roadmap, error) {
	var sets []string
	var args []any
	if currentPhase != nil {
		sets = append(sets, "current_phase = ?")
		args = append(args, *currentPhase)
	}
	if progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *progress)
	}
	if len(sets) > 0 {
		args = append(args, id, userID)
		res, err := s.db.Exec(`UPDATE roadmaps SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
		if err != nil {
			return Roadmap{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Roadmap{}, err
		}
		if n == 0 {
			return Roadmap{}, ErrNotFound
		}
	}
	return s.GetRoadmap(id, userID)
}

// CatalogEmpty reports whether the job catalog has no entries (used to decide
// whether to seed demo data).
func (s *Store) CatalogEmpty() (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func marshalStrings(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshalling string list: %w", err)
	}
	return string(b), nil
}
