package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillbridge/skillbridge/internal/config"
)

// --- login ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client := &apiClient{
			baseURL:    fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port),
			httpClient: &http.Client{Timeout: 30 * time.Second},
		}

		resp, err := client.post(cmd.Context(), "/api/auth/login", map[string]string{
			"email":    email,
			"password": password,
		})
		if err != nil {
			return err
		}

		var result struct {
			Token string `json:"token"`
			User  struct {
				FullName string `json:"fullName"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if err := saveToken(cfg.Storage.DataDir, result.Token); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		printSuccess("Logged in as %s", result.User.FullName)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
}

// --- jobs ---

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		location, _ := cmd.Flags().GetString("location")
		jobType, _ := cmd.Flags().GetString("type")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		q := url.Values{}
		q.Set("limit", "50")
		if search != "" {
			q.Set("search", search)
		}
		if location != "" {
			q.Set("location", location)
		}
		if jobType != "" {
			q.Set("jobType", jobType)
		}

		resp, err := client.get(cmd.Context(), "/api/jobs?"+q.Encode())
		if err != nil {
			return err
		}

		var result struct {
			Jobs []struct {
				ID             string   `json:"id"`
				Title          string   `json:"title"`
				Company        string   `json:"company"`
				Location       string   `json:"location"`
				JobType        string   `json:"jobType"`
				RequiredSkills []string `json:"requiredSkills"`
			} `json:"jobs"`
			Pagination struct {
				Total int `json:"total"`
			} `json:"pagination"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		for _, j := range result.Jobs {
			fmt.Printf("%s  %s at %s (%s, %s)\n", colorize(colorBold, shortID(j.ID)), j.Title, j.Company, j.Location, j.JobType)
			fmt.Printf("          skills: %s\n", strings.Join(j.RequiredSkills, ", "))
		}
		printStatus("Total", "%d", result.Pagination.Total)
		return nil
	},
}

func init() {
	jobsCmd.Flags().String("search", "", "search in title, company, description")
	jobsCmd.Flags().String("location", "", "filter by location")
	jobsCmd.Flags().String("type", "", "filter by job type")
}

// --- match ---

var matchCmd = &cobra.Command{
	Use:   "match <job-id>",
	Short: "Score your profile against one job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/jobs/"+args[0]+"/match")
		if err != nil {
			return err
		}

		var result struct {
			MatchPercentage     int      `json:"matchPercentage"`
			MatchedSkills       []string `json:"matchedSkills"`
			MissingSkills       []string `json:"missingSkills"`
			Reason              string   `json:"reason"`
			SkillMatchCount     int      `json:"skillMatchCount"`
			TotalRequiredSkills int      `json:"totalRequiredSkills"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printStatus("Match", "%d%%", result.MatchPercentage)
		printStatus("Skills", "%d of %d", result.SkillMatchCount, result.TotalRequiredSkills)
		if len(result.MatchedSkills) > 0 {
			printStatus("Matched", "%s", strings.Join(result.MatchedSkills, ", "))
		}
		if len(result.MissingSkills) > 0 {
			printStatus("Missing", "%s", strings.Join(result.MissingSkills, ", "))
		}
		fmt.Println(result.Reason)
		return nil
	},
}

// --- gaps ---

var gapsCmd = &cobra.Command{
	Use:   "gaps <job-id>",
	Short: "Show missing skills for a job and resources that cover them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/jobs/"+args[0]+"/gaps")
		if err != nil {
			return err
		}

		var result struct {
			MissingSkills   []string `json:"missingSkills"`
			GapCount        int      `json:"gapCount"`
			Recommendations []struct {
				Title    string  `json:"title"`
				Platform string  `json:"platform"`
				CostType string  `json:"costType"`
				Price    float64 `json:"price"`
				Reason   string  `json:"reason"`
			} `json:"recommendations"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result.GapCount == 0 {
			printSuccess("No skill gaps for this job")
			return nil
		}

		printStatus("Missing", "%s", strings.Join(result.MissingSkills, ", "))
		for _, rec := range result.Recommendations {
			cost := rec.CostType
			if rec.CostType == "Paid" {
				cost = fmt.Sprintf("$%.2f", rec.Price)
			}
			fmt.Printf("  %s (%s, %s)\n", colorize(colorBold, rec.Title), rec.Platform, cost)
			fmt.Printf("    %s\n", rec.Reason)
		}
		return nil
	},
}

// --- recommend ---

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank the job catalog against your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/jobs/recommended?limit=%d", limit))
		if err != nil {
			return err
		}

		var result struct {
			Jobs []struct {
				Job struct {
					ID      string `json:"id"`
					Title   string `json:"title"`
					Company string `json:"company"`
				} `json:"job"`
				MatchPercentage int    `json:"matchPercentage"`
				Reason          string `json:"reason"`
			} `json:"jobs"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		for _, rj := range result.Jobs {
			fmt.Printf("%3d%%  %s  %s at %s\n", rj.MatchPercentage, colorize(colorBold, shortID(rj.Job.ID)), rj.Job.Title, rj.Job.Company)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Int("limit", 10, "maximum number of jobs")
}

// --- roadmap ---

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate or show your learning roadmap",
}

var roadmapGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new roadmap toward a target role",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		months, _ := cmd.Flags().GetInt("months")
		hours, _ := cmd.Flags().GetInt("hours")
		if role == "" {
			return fmt.Errorf("--role is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/roadmap/generate", map[string]any{
			"targetRole":           role,
			"timeframeMonths":      months,
			"learningHoursPerWeek": hours,
		})
		if err != nil {
			return err
		}

		var rm roadmapView
		if err := decodeJSON(resp, &rm); err != nil {
			return err
		}

		printSuccess("Roadmap generated for %s (%d months)", rm.TargetRole, rm.TimeframeMonths)
		printRoadmap(rm)
		return nil
	},
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your current roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/roadmap/current")
		if err != nil {
			return err
		}

		var rm roadmapView
		if err := decodeJSON(resp, &rm); err != nil {
			return err
		}

		printStatus("Target", "%s", rm.TargetRole)
		printStatus("Progress", "%d%% (phase %d)", rm.Progress, rm.CurrentPhase)
		printRoadmap(rm)
		return nil
	},
}

type roadmapView struct {
	ID              string `json:"id"`
	TargetRole      string `json:"targetRole"`
	TimeframeMonths int    `json:"timeframeMonths"`
	CurrentPhase    int    `json:"currentPhase"`
	Progress        int    `json:"progress"`
	Phases          []struct {
		PhaseNumber  int      `json:"phaseNumber"`
		Title        string   `json:"title"`
		Duration     string   `json:"duration"`
		Topics       []string `json:"topics"`
		Technologies []string `json:"technologies"`
	} `json:"phases"`
}

func printRoadmap(rm roadmapView) {
	for _, p := range rm.Phases {
		fmt.Printf("\n%s %s (%s)\n", colorize(colorBold, fmt.Sprintf("Phase %d:", p.PhaseNumber)), p.Title, p.Duration)
		if len(p.Topics) > 0 {
			fmt.Printf("  topics: %s\n", strings.Join(p.Topics, ", "))
		}
		if len(p.Technologies) > 0 {
			fmt.Printf("  tech:   %s\n", strings.Join(p.Technologies, ", "))
		}
	}
}

func init() {
	roadmapGenerateCmd.Flags().String("role", "", "target role, e.g. \"Full Stack Developer\"")
	roadmapGenerateCmd.Flags().Int("months", 6, "timeframe in months")
	roadmapGenerateCmd.Flags().Int("hours", 10, "learning hours per week")
	roadmapCmd.AddCommand(roadmapGenerateCmd)
	roadmapCmd.AddCommand(roadmapShowCmd)
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the career assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/assistant/chat", map[string]string{
			"message": strings.Join(args, " "),
		})
		if err != nil {
			return err
		}

		var result struct {
			Reply string `json:"reply"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Reply)
		return nil
	},
}

// --- skills ---

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Update your skills",
	Long: `Update your skills.

Examples:
  skillbridge skills --set "JavaScript,React,Node.js"
  skillbridge skills --cv ./resume.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _ := cmd.Flags().GetString("set")
		cvPath, _ := cmd.Flags().GetString("cv")

		if set == "" && cvPath == "" {
			return fmt.Errorf("one of --set or --cv is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if cvPath != "" {
			return uploadCV(cmd, client, cvPath)
		}

		skills := strings.Split(set, ",")
		for i := range skills {
			skills[i] = strings.TrimSpace(skills[i])
		}

		resp, err := client.put(cmd.Context(), "/api/profile/skills", map[string]any{"skills": skills})
		if err != nil {
			return err
		}

		var user struct {
			Skills []string `json:"skills"`
		}
		if err := decodeJSON(resp, &user); err != nil {
			return err
		}

		printSuccess("Skills updated: %s", strings.Join(user.Skills, ", "))
		return nil
	},
}

func init() {
	skillsCmd.Flags().String("set", "", "comma-separated skill list")
	skillsCmd.Flags().String("cv", "", "CV file to extract skills from (pdf, html, or text)")
}

func uploadCV(cmd *cobra.Command, client *apiClient, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("reading CV: %w", err)
	}

	resp, err := client.postFile(cmd.Context(), "/api/profile/cv", "cv", path)
	if err != nil {
		return err
	}

	var result struct {
		Skills          []string `json:"skills"`
		ExperienceLevel string   `json:"experienceLevel"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return err
	}

	printSuccess("Extracted %d skills (%s)", len(result.Skills), result.ExperienceLevel)
	if len(result.Skills) > 0 {
		printStatus("Skills", "%s", strings.Join(result.Skills, ", "))
	}
	return nil
}
