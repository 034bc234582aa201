package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillbridge/skillbridge/internal/catalog"
)

// Seed populates an empty database with a demo user, a job catalog, and
// learning resources. Jobs get staggered posted_at timestamps so listing
// order is deterministic.
func (s *Store) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	now := time.Now().UTC()
	demo := User{
		ID:              uuid.NewString(),
		FullName:        "Alex Johnson",
		Email:           "test@example.com",
		PasswordHash:    string(hash),
		Education:       "Bachelor's in Computer Science",
		Department:      "Engineering",
		ExperienceLevel: catalog.Junior,
		PreferredTrack:  "Full Stack Development",
		Skills:          []string{"JavaScript", "React", "Node.js", "HTML", "CSS", "MongoDB"},
		CVText:          "Experienced junior developer with strong foundation in MERN stack. Passionate about building scalable web applications.",
		CreatedAt:       now,
	}
	if err := s.CreateUser(demo); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	for i, j := range seedJobs {
		j.ID = uuid.NewString()
		j.PostedAt = now.Add(-time.Duration(i) * time.Hour)
		if err := s.InsertJob(j); err != nil {
			return fmt.Errorf("seeding job %q: %w", j.Title, err)
		}
	}

	for _, r := range seedResources {
		r.ID = uuid.NewString()
		if err := s.InsertResource(r); err != nil {
			return fmt.Errorf("seeding resource %q: %w", r.Title, err)
		}
	}
	return nil
}

var seedJobs = []catalog.Job{
	{
		Title:                 "Frontend Developer Intern",
		Company:               "TechCorp",
		Location:              "San Francisco, CA",
		RequiredSkills:        []string{"JavaScript", "React", "HTML", "CSS"},
		RecommendedExperience: "0-1 years",
		JobType:               "Internship",
		Description:           "Join our frontend team to build modern web applications using React and modern JavaScript. Great learning opportunity for students and recent graduates.",
	},
	{
		Title:                 "Full Stack Developer",
		Company:               "StartupXYZ",
		Location:              "Remote",
		RequiredSkills:        []string{"JavaScript", "Node.js", "React", "MongoDB"},
		RecommendedExperience: "1-3 years",
		JobType:               "Full-time",
		Description:           "We are looking for a full stack developer to help build our next-generation platform. You will work with React, Node.js, and MongoDB.",
	},
	{
		Title:                 "Junior Software Engineer",
		Company:               "BigTech Inc",
		Location:              "New York, NY",
		RequiredSkills:        []string{"JavaScript", "Python", "SQL"},
		RecommendedExperience: "0-2 years",
		JobType:               "Full-time",
		Description:           "Entry-level position for recent graduates. Work on exciting projects with mentorship from senior engineers.",
	},
	{
		Title:                 "React Developer",
		Company:               "WebAgency",
		Location:              "Austin, TX",
		RequiredSkills:        []string{"React", "JavaScript", "CSS", "TypeScript"},
		RecommendedExperience: "1-2 years",
		JobType:               "Full-time",
		Description:           "Build beautiful user interfaces with React. Experience with modern CSS frameworks and state management required.",
	},
	{
		Title:                 "Backend Developer",
		Company:               "CloudServices",
		Location:              "Seattle, WA",
		RequiredSkills:        []string{"Node.js", "MongoDB", "Express", "REST API"},
		RecommendedExperience: "2-4 years",
		JobType:               "Full-time",
		Description:           "Design and implement scalable backend services. Experience with microservices architecture preferred.",
	},
	{
		Title:                 "Web Development Apprentice",
		Company:               "LearnTech",
		Location:              "Chicago, IL",
		RequiredSkills:        []string{"HTML", "CSS", "JavaScript"},
		RecommendedExperience: "0 years",
		JobType:               "Apprenticeship",
		Description:           "Paid apprenticeship program for aspiring web developers. Learn on the job with structured mentorship.",
	},
	{
		Title:                 "Freelance Frontend Developer",
		Company:               "FreelanceHub",
		Location:              "Remote",
		RequiredSkills:        []string{"React", "JavaScript", "CSS"},
		RecommendedExperience: "1+ years",
		JobType:               "Freelance",
		Description:           "Work on diverse client projects. Flexible schedule, remote work. Build your portfolio while earning.",
	},
	{
		Title:                 "Part-time Web Developer",
		Company:               "LocalBusiness",
		Location:              "Portland, OR",
		RequiredSkills:        []string{"HTML", "CSS", "JavaScript", "WordPress"},
		RecommendedExperience: "0-1 years",
		JobType:               "Part-time",
		Description:           "Perfect for students or those looking for flexible hours. Help small businesses establish their online presence.",
	},
	{
		Title:                 "MERN Stack Developer",
		Company:               "DevStudio",
		Location:              "Remote",
		RequiredSkills:        []string{"MongoDB", "Express", "React", "Node.js"},
		RecommendedExperience: "2-3 years",
		JobType:               "Full-time",
		Description:           "Join our team building modern web applications. Full MERN stack experience required.",
	},
	{
		Title:                 "JavaScript Developer",
		Company:               "CodeMasters",
		Location:              "Boston, MA",
		RequiredSkills:        []string{"JavaScript", "ES6+", "Async Programming"},
		RecommendedExperience: "1-2 years",
		JobType:               "Full-time",
		Description:           "Work on cutting-edge JavaScript projects. Strong understanding of modern JS features required.",
	},
	{
		Title:                 "UI/UX Developer",
		Company:               "DesignFirst",
		Location:              "Los Angeles, CA",
		RequiredSkills:        []string{"React", "CSS", "Design Systems", "Figma"},
		RecommendedExperience: "1-3 years",
		JobType:               "Full-time",
		Description:           "Bridge the gap between design and development. Create beautiful, accessible user interfaces.",
	},
	{
		Title:                 "Database Developer",
		Company:               "DataSolutions",
		Location:              "Denver, CO",
		RequiredSkills:        []string{"MongoDB", "SQL", "Database Design"},
		RecommendedExperience: "2-4 years",
		JobType:               "Full-time",
		Description:           "Design and optimize database schemas. Experience with both SQL and NoSQL databases.",
	},
	{
		Title:                 "API Developer",
		Company:               "IntegrationPro",
		Location:              "Remote",
		RequiredSkills:        []string{"Node.js", "REST API", "GraphQL", "Express"},
		RecommendedExperience: "2-3 years",
		JobType:               "Contract",
		Description:           "Build robust APIs for enterprise clients. Experience with API design and documentation required.",
	},
	{
		Title:                 "Junior Full Stack Developer",
		Company:               "GrowthStartup",
		Location:              "Miami, FL",
		RequiredSkills:        []string{"JavaScript", "React", "Node.js", "PostgreSQL"},
		RecommendedExperience: "0-2 years",
		JobType:               "Full-time",
		Description:           "Fast-growing startup looking for passionate developers. Learn and grow with us!",
	},
	{
		Title:                 "Web Development Intern",
		Company:               "EduTech",
		Location:              "Remote",
		RequiredSkills:        []string{"HTML", "CSS", "JavaScript"},
		RecommendedExperience: "0 years",
		JobType:               "Internship",
		Description:           "Summer internship for students. Work on real projects and build your portfolio.",
	},
	{
		Title:                 "Frontend Engineer",
		Company:               "FinTech Solutions",
		Location:              "New York, NY",
		RequiredSkills:        []string{"React", "TypeScript", "Redux", "Testing"},
		RecommendedExperience: "3-5 years",
		JobType:               "Full-time",
		Description:           "Build financial applications with high standards for quality and security.",
	},
	{
		Title:                 "Backend Engineer",
		Company:               "ScaleUp",
		Location:              "San Francisco, CA",
		RequiredSkills:        []string{"Node.js", "MongoDB", "Redis", "Docker"},
		RecommendedExperience: "3-5 years",
		JobType:               "Full-time",
		Description:           "Work on high-traffic applications. Experience with scaling and performance optimization required.",
	},
	{
		Title:                 "Full Stack Developer",
		Company:               "Innovation Labs",
		Location:              "Remote",
		RequiredSkills:        []string{"JavaScript", "React", "Node.js", "MongoDB", "AWS"},
		RecommendedExperience: "2-4 years",
		JobType:               "Full-time",
		Description:           "Build innovative products from concept to deployment. Full stack experience with cloud services.",
	},
}

var seedResources = []catalog.Resource{
	{
		Title:         "Complete React Developer Course",
		Platform:      "Udemy",
		URL:           "https://www.udemy.com/react-course",
		RelatedSkills: []string{"React", "JavaScript", "Frontend"},
		CostType:      catalog.Paid,
		Price:         89.99,
		Description:   "Master React from basics to advanced. Build real-world projects and learn best practices.",
	},
	{
		Title:         "JavaScript: The Complete Guide",
		Platform:      "freeCodeCamp",
		URL:           "https://www.freecodecamp.org/javascript",
		RelatedSkills: []string{"JavaScript", "Programming Fundamentals"},
		CostType:      catalog.Free,
		Description:   "Comprehensive JavaScript course covering ES6+, async programming, and modern patterns.",
	},
	{
		Title:         "Node.js Masterclass",
		Platform:      "Coursera",
		URL:           "https://www.coursera.org/nodejs",
		RelatedSkills: []string{"Node.js", "Backend", "Express"},
		CostType:      catalog.Paid,
		Price:         49.99,
		Description:   "Learn to build scalable backend applications with Node.js and Express.",
	},
	{
		Title:         "MongoDB University",
		Platform:      "MongoDB",
		URL:           "https://university.mongodb.com",
		RelatedSkills: []string{"MongoDB", "Database", "NoSQL"},
		CostType:      catalog.Free,
		Description:   "Official MongoDB courses covering database design, queries, and best practices.",
	},
	{
		Title:         "HTML & CSS Basics",
		Platform:      "Codecademy",
		URL:           "https://www.codecademy.com/html-css",
		RelatedSkills: []string{"HTML", "CSS", "Web Development"},
		CostType:      catalog.Free,
		Description:   "Learn the fundamentals of web development with hands-on exercises.",
	},
	{
		Title:         "Python for Data Science",
		Platform:      "edX",
		URL:           "https://www.edx.org/python-data",
		RelatedSkills: []string{"Python", "Data Science", "Analytics"},
		CostType:      catalog.Paid,
		Price:         199.99,
		Description:   "Comprehensive course on using Python for data analysis and machine learning.",
	},
	{
		Title:         "SQL Fundamentals",
		Platform:      "Khan Academy",
		URL:           "https://www.khanacademy.org/sql",
		RelatedSkills: []string{"SQL", "Database", "Data Querying"},
		CostType:      catalog.Free,
		Description:   "Learn SQL from scratch. Perfect for beginners starting with databases.",
	},
	{
		Title:         "UI/UX Design Principles",
		Platform:      "Interaction Design Foundation",
		URL:           "https://www.interaction-design.org/ux",
		RelatedSkills: []string{"Design", "UI/UX", "User Experience"},
		CostType:      catalog.Paid,
		Price:         16.99,
		Description:   "Master the principles of user-centered design and create better user experiences.",
	},
	{
		Title:         "Digital Marketing Essentials",
		Platform:      "Google Digital Garage",
		URL:           "https://learndigital.withgoogle.com",
		RelatedSkills: []string{"Marketing", "Digital Marketing", "SEO"},
		CostType:      catalog.Free,
		Description:   "Free course covering SEO, social media marketing, and digital advertising.",
	},
	{
		Title:         "Communication Skills Workshop",
		Platform:      "LinkedIn Learning",
		URL:           "https://www.linkedin.com/learning/communication",
		RelatedSkills: []string{"Communication", "Soft Skills", "Professional Development"},
		CostType:      catalog.Paid,
		Price:         29.99,
		Description:   "Improve your professional communication skills for better workplace collaboration.",
	},
	{
		Title:         "Advanced React Patterns",
		Platform:      "Frontend Masters",
		URL:           "https://frontendmasters.com/react-advanced",
		RelatedSkills: []string{"React", "Advanced Patterns", "Performance"},
		CostType:      catalog.Paid,
		Price:         39.99,
		Description:   "Deep dive into advanced React patterns, hooks, and performance optimization.",
	},
	{
		Title:         "Express.js API Development",
		Platform:      "YouTube",
		URL:           "https://www.youtube.com/express-api",
		RelatedSkills: []string{"Express", "REST API", "Backend"},
		CostType:      catalog.Free,
		Description:   "Free tutorial series on building RESTful APIs with Express.js.",
	},
	{
		Title:         "Full Stack Web Development Bootcamp",
		Platform:      "The Odin Project",
		URL:           "https://www.theodinproject.com",
		RelatedSkills: []string{"Full Stack", "Web Development", "MERN"},
		CostType:      catalog.Free,
		Description:   "Comprehensive free curriculum covering full stack web development.",
	},
	{
		Title:         "TypeScript for JavaScript Developers",
		Platform:      "Pluralsight",
		URL:           "https://www.pluralsight.com/typescript",
		RelatedSkills: []string{"TypeScript", "JavaScript", "Type Safety"},
		CostType:      catalog.Paid,
		Price:         29.99,
		Description:   "Learn TypeScript to write more maintainable and scalable JavaScript code.",
	},
	{
		Title:         "GraphQL API Development",
		Platform:      "Apollo GraphQL",
		URL:           "https://www.apollographql.com/tutorials",
		RelatedSkills: []string{"GraphQL", "API", "Backend"},
		CostType:      catalog.Free,
		Description:   "Official Apollo tutorials for building GraphQL APIs and clients.",
	},
	{
		Title:         "Docker & Containerization",
		Platform:      "Docker Official",
		URL:           "https://docs.docker.com/get-started",
		RelatedSkills: []string{"Docker", "DevOps", "Containers"},
		CostType:      catalog.Free,
		Description:   "Learn containerization with Docker. Essential for modern development workflows.",
	},
	{
		Title:         "AWS Cloud Practitioner",
		Platform:      "AWS Training",
		URL:           "https://aws.amazon.com/training",
		RelatedSkills: []string{"AWS", "Cloud Computing", "DevOps"},
		CostType:      catalog.Free,
		Description:   "Free AWS training to get started with cloud computing and services.",
	},
	{
		Title:         "Git & Version Control",
		Platform:      "Atlassian",
		URL:           "https://www.atlassian.com/git/tutorials",
		RelatedSkills: []string{"Git", "Version Control", "Collaboration"},
		CostType:      catalog.Free,
		Description:   "Master Git and version control workflows for team collaboration.",
	},
	{
		Title:         "Testing with Jest",
		Platform:      "Jest Official",
		URL:           "https://jestjs.io/docs/getting-started",
		RelatedSkills: []string{"Testing", "Jest", "Quality Assurance"},
		CostType:      catalog.Free,
		Description:   "Learn to write and run tests with Jest, the popular JavaScript testing framework.",
	},
	{
		Title:         "Web Accessibility (a11y)",
		Platform:      "WebAIM",
		URL:           "https://webaim.org/resources",
		RelatedSkills: []string{"Accessibility", "Web Standards", "Inclusive Design"},
		CostType:      catalog.Free,
		Description:   "Learn to build accessible web applications that work for everyone.",
	},
}
