package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/gap"
	"github.com/skillbridge/skillbridge/internal/matching"
	"github.com/skillbridge/skillbridge/internal/recommend"
	"github.com/skillbridge/skillbridge/internal/roadmap"
	"github.com/skillbridge/skillbridge/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store    *storage.Store
	Roadmaps *roadmap.Generator
}

// NewMCPServer creates an MCP server exposing the matching, gap analysis,
// recommendation, and roadmap tools over the stored catalog.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"skillbridge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("SkillBridge — match skill profiles against a job catalog, find skill gaps, and plan learning roadmaps."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("match_score",
			mcp.WithDescription("Score a skill profile against one job from the catalog and explain the result."),
			mcp.WithString("job_id", mcp.Description("Job ID from the catalog"), mcp.Required()),
			mcp.WithArray("skills", mcp.Description("The candidate's skills"), mcp.Required()),
			mcp.WithString("experience_level", mcp.Description("One of Fresher, Junior, Mid, Senior")),
			mcp.WithString("preferred_track", mcp.Description("Preferred career track, e.g. Full Stack Development")),
		),
		mcpMatchScore(deps),
	)

	s.AddTool(
		mcp.NewTool("skill_gap",
			mcp.WithDescription("List the skills missing for one job and recommend learning resources that cover them."),
			mcp.WithString("job_id", mcp.Description("Job ID from the catalog"), mcp.Required()),
			mcp.WithArray("skills", mcp.Description("The candidate's skills"), mcp.Required()),
		),
		mcpSkillGap(deps),
	)

	s.AddTool(
		mcp.NewTool("recommend_jobs",
			mcp.WithDescription("Rank the job catalog for a skill profile, best match first."),
			mcp.WithArray("skills", mcp.Description("The candidate's skills"), mcp.Required()),
			mcp.WithString("experience_level", mcp.Description("One of Fresher, Junior, Mid, Senior")),
			mcp.WithString("preferred_track", mcp.Description("Preferred career track")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 5)")),
		),
		mcpRecommendJobs(deps),
	)

	s.AddTool(
		mcp.NewTool("generate_roadmap",
			mcp.WithDescription("Generate a phased learning roadmap toward a target role."),
			mcp.WithString("target_role", mcp.Description("Role to plan for, e.g. Full Stack Developer"), mcp.Required()),
			mcp.WithNumber("timeframe_months", mcp.Description("Months available (default 6)")),
			mcp.WithNumber("hours_per_week", mcp.Description("Learning hours per week (default 10)")),
			mcp.WithArray("skills", mcp.Description("The candidate's current skills")),
		),
		mcpGenerateRoadmap(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"skillbridge://jobs",
			"Job Catalog",
			mcp.WithResourceDescription("All job postings as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceJobs(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"skillbridge://resources",
			"Learning Resources",
			mcp.WithResourceDescription("All learning resources as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceResources(deps),
	)

	return s
}

func profileFromRequest(req mcp.CallToolRequest) catalog.Profile {
	return catalog.Profile{
		Skills:          req.GetStringSlice("skills", nil),
		ExperienceLevel: catalog.ExperienceLevel(req.GetString("experience_level", "")),
		PreferredTrack:  req.GetString("preferred_track", ""),
	}
}

func mcpMatchScore(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobID, err := req.RequireString("job_id")
		if err != nil {
			return mcpError("job_id is required"), nil
		}

		job, err := deps.Store.GetJob(jobID)
		if err != nil {
			return mcpError(fmt.Sprintf("job lookup failed: %v", err)), nil
		}

		result := matching.Score(profileFromRequest(req), job)
		b, err := json.Marshal(result)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSkillGap(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobID, err := req.RequireString("job_id")
		if err != nil {
			return mcpError("job_id is required"), nil
		}
		skills := req.GetStringSlice("skills", nil)

		job, err := deps.Store.GetJob(jobID)
		if err != nil {
			return mcpError(fmt.Sprintf("job lookup failed: %v", err)), nil
		}
		resources, err := deps.Store.AllResources()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list resources: %v", err)), nil
		}

		analysis := gap.Analyze(skills, job.RequiredSkills, resources)
		b, err := json.Marshal(analysis)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal analysis: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpRecommendJobs(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile := profileFromRequest(req)
		if len(profile.Skills) == 0 {
			return mcpError("skills is required"), nil
		}

		limit := req.GetInt("limit", 5)
		if limit <= 0 {
			limit = 5
		}
		if limit > 50 {
			limit = 50
		}

		jobs, err := deps.Store.AllJobs()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list jobs: %v", err)), nil
		}

		ranked := recommend.RankJobs(profile, jobs, limit)
		b, err := json.Marshal(ranked)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGenerateRoadmap(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targetRole, err := req.RequireString("target_role")
		if err != nil {
			return mcpError("target_role is required"), nil
		}

		months := req.GetInt("timeframe_months", 6)
		if months <= 0 {
			months = 6
		}
		hours := req.GetInt("hours_per_week", 10)
		if hours <= 0 {
			hours = 10
		}

		profile := catalog.Profile{Skills: req.GetStringSlice("skills", nil)}
		phases := deps.Roadmaps.Generate(ctx, profile, targetRole, months, hours)

		b, err := json.Marshal(phases)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal roadmap: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceJobs(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jobs, err := deps.Store.AllJobs()
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}

		b, err := json.Marshal(jobs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal jobs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceResources(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resources, err := deps.Store.AllResources()
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}

		b, err := json.Marshal(resources)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resources: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
