// Package seed provides the fixture data the board boots with: two
// known accounts and a spread of ideas across statuses and ages.
package seed

import (
	"fmt"
	"time"

	"github.com/jadeniji/ideaboard-backend/internal/auth"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
)

// Known accounts. Passwords are hashed at boot so no hash material
// lives in the source tree.
const (
	AdminEmployeeID = "ADMIN007"
	AdminPassword   = "adminpass"
	UserEmployeeID  = "EMP1001"
	UserPassword    = "userpass"
)

func Users() ([]models.User, error) {
	adminHash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	userHash, err := auth.HashPassword(UserPassword)
	if err != nil {
		return nil, fmt.Errorf("hash user password: %w", err)
	}
	return []models.User{
		{
			ID:           "2",
			EmployeeID:   AdminEmployeeID,
			Name:         "John Adeniji",
			Email:        "johnadeniji@gtcobank.com",
			PasswordHash: adminHash,
			Role:         models.RoleAdmin,
			Department:   "IT Administration",
			JoinDate:     "2020-01-15",
		},
		{
			ID:           "1",
			EmployeeID:   UserEmployeeID,
			Name:         "Temitayo",
			Email:        "Temitayo@gmail.com",
			PasswordHash: userHash,
			Role:         models.RoleUser,
			Department:   "Innovation Department",
			JoinDate:     "2021-03-10",
		},
	}, nil
}

const loremBody = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

// BoardIdeas is the main board. SortDate is derived from now so relative
// timestamps stay truthful no matter when the process starts.
func BoardIdeas(now time.Time) []models.Idea {
	return []models.Idea{
		{
			ID: 1, Title: "Organize relevant Staff Training", Content: loremBody,
			Timestamp: "2 hr ago", SortDate: now.Add(-2 * time.Hour),
			Upvotes: 24, Downvotes: 3,
			Tags: []string{"Staff Training", "HR"}, AuthorRef: "EMP3008", Status: models.StatusPending,
		},
		{
			ID: 2, Title: "Give us better food", Content: loremBody,
			Timestamp: "3 hr ago", SortDate: now.Add(-3 * time.Hour),
			Upvotes: 42, Downvotes: 5,
			Tags: []string{"Staff Well-being", "Cafeteria"}, AuthorRef: "EMP4001", Status: models.StatusApproved,
		},
		{
			ID: 3, Title: "Create a marketplace app for staff", Content: loremBody,
			Timestamp: "5 hr ago", SortDate: now.Add(-5 * time.Hour),
			Upvotes: 31, Downvotes: 2,
			Tags: []string{"Staff Marketplace", "App Development"}, AuthorRef: "EMP5002", Status: models.StatusPending,
		},
		{
			ID: 4, Title: "Buy Favour's Cake!", Content: loremBody,
			Timestamp: "6 hr ago", SortDate: now.Add(-6 * time.Hour),
			Upvotes: 18, Downvotes: 1,
			Tags: []string{"Staff Celebration", "Birthday"}, AuthorRef: "EMP4300", Status: models.StatusRejected,
		},
		{
			ID: 101, Title: "AI-Powered Customer Service Chatbot",
			Content:   "Implement an advanced AI chatbot to handle routine customer inquiries and provide 24/7 support.",
			Timestamp: "2 days ago", SortDate: now.Add(-2 * 24 * time.Hour),
			Upvotes: 156, Downvotes: 10,
			Tags: []string{"Popular", "AI", "Customer Service"}, AuthorRef: "EMP2001", Status: models.StatusPending,
			Comments: []models.Comment{
				{Text: "Great idea! I love AI chatbots.", DisplayName: "User1", AuthorRef: "EMP2002", Timestamp: "2 days ago", SortDate: now.Add(-2 * 24 * time.Hour)},
				{Text: "This could be really helpful for customer support.", DisplayName: "User2", AuthorRef: "EMP2003", Timestamp: "1 day ago", SortDate: now.Add(-24 * time.Hour)},
			},
		},
		{
			ID: 201, Title: "Mobile Branch Banking App",
			Content:   "A mobile app that brings all branch services to customers' phones, reducing wait times and improving service delivery.",
			Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour),
			Upvotes: 89, Downvotes: 0,
			Tags: []string{"My Idea", "Mobile", "Banking"}, AuthorRef: "1", Status: models.StatusImplemented,
			Comments: []models.Comment{
				{Text: "Great idea! This will really help our customers.", DisplayName: "Jane Smith", AuthorRef: "EMP1002", Timestamp: "1 month ago", SortDate: now.Add(-30 * 24 * time.Hour)},
				{Text: "We should prioritize this for Q3.", DisplayName: "John Doe", AuthorRef: "EMP1003", Timestamp: "3 weeks ago", SortDate: now.Add(-21 * 24 * time.Hour)},
				{Text: "The tech team is already working on this.", DisplayName: "Tech Lead", AuthorRef: "EMP1004", Timestamp: "2 weeks ago", SortDate: now.Add(-14 * 24 * time.Hour)},
			},
		},
		{
			ID: 202, Title: "Smart Queue Management System",
			Content:   "Using IoT sensors and mobile app integration to manage branch queues efficiently and reduce wait times.",
			Timestamp: "1 month ago", SortDate: now.Add(-30 * 24 * time.Hour),
			Upvotes: 45, Downvotes: 0,
			Tags: []string{"My Idea", "IoT", "Queue Management"}, AuthorRef: "EMP1003", Status: models.StatusApproved,
			Comments: []models.Comment{
				{Text: "This is a great solution! I've seen similar systems in other banks.", DisplayName: "Alice Johnson", AuthorRef: "EMP1005", Timestamp: "2 weeks ago", SortDate: now.Add(-14 * 24 * time.Hour)},
				{Text: "I'm excited to see this in action! Let's get it started.", DisplayName: "Bob Brown", AuthorRef: "EMP1006", Timestamp: "1 week ago", SortDate: now.Add(-7 * 24 * time.Hour)},
			},
		},
		{
			ID: 301, Title: "Automated Compliance Reporting",
			Content:   "Create an automated system for generating compliance reports to reduce manual work and ensure accuracy.",
			Timestamp: "3 months ago", SortDate: now.Add(-90 * 24 * time.Hour),
			Upvotes: 42, Downvotes: 3,
			Tags: []string{"Admin", "Compliance", "Automation"}, AuthorRef: "2", Status: models.StatusImplemented,
			Comments: []models.Comment{
				{Text: "This will save us hours of work each month!", DisplayName: "Jane Smith", AuthorRef: "EMP1002", Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour)},
				{Text: "Can we prioritize this for Q2?", DisplayName: "John Doe", AuthorRef: "EMP1003", Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour)},
				{Text: "Implementation has begun, expected completion next month.", DisplayName: "Admin User", AuthorRef: "2", Timestamp: "1 month ago", SortDate: now.Add(-30 * 24 * time.Hour)},
			},
		},
		{
			ID: 401, Title: "Digital Branch Transformation",
			Content:   "Redesign branch layout with digital-first approach, including self-service kiosks and video banking stations.",
			Timestamp: "3 days ago", SortDate: now.Add(-3 * 24 * time.Hour),
			Upvotes: 45, Downvotes: 0,
			Tags: []string{"Branch", "Innovation", "Digital"}, AuthorRef: "EMP3001", Status: models.StatusPending,
			Comments: []models.Comment{
				{Text: "This would greatly improve customer experience!", DisplayName: "Branch Manager", AuthorRef: "EMP3002", Timestamp: "2 days ago", SortDate: now.Add(-2 * 24 * time.Hour)},
				{Text: "We should pilot this in our downtown location first.", DisplayName: "Regional Director", AuthorRef: "EMP3003", Timestamp: "1 day ago", SortDate: now.Add(-24 * time.Hour)},
				{Text: "I've seen similar implementations at competitor banks.", DisplayName: "Market Analyst", AuthorRef: "EMP3004", Timestamp: "12 hours ago", SortDate: now.Add(-12 * time.Hour)},
			},
		},
		{
			ID: 402, Title: "Branch Staff Mobile App",
			Content:   "Create a mobile app for branch staff to access customer information, process transactions, and provide service anywhere in the branch.",
			Timestamp: "5 days ago", SortDate: now.Add(-5 * 24 * time.Hour),
			Upvotes: 38, Downvotes: 0,
			Tags: []string{"Mobile", "Staff", "Technology"}, AuthorRef: "EMP3005", Status: models.StatusPending,
			Comments: []models.Comment{
				{Text: "This would eliminate the need for fixed teller stations!", DisplayName: "Operations Manager", AuthorRef: "EMP3006", Timestamp: "4 days ago", SortDate: now.Add(-4 * 24 * time.Hour)},
				{Text: "We need to ensure strong security measures for this.", DisplayName: "IT Security", AuthorRef: "EMP3007", Timestamp: "3 days ago", SortDate: now.Add(-3 * 24 * time.Hour)},
			},
		},
	}
}

// MyIdeas is the "own submissions" feed source for the regular account.
func MyIdeas(now time.Time) []models.Idea {
	return []models.Idea{
		{
			ID: 201, Title: "Mobile Branch Banking App",
			Content:   "A mobile app that brings all branch services to customers' phones, reducing wait times and improving service delivery.",
			Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour),
			Upvotes: 89, Downvotes: 0,
			Tags: []string{"My Idea", "Mobile", "Banking"}, AuthorRef: "1", Status: models.StatusImplemented,
		},
		{
			ID: 202, Title: "Customer Feedback QR Codes",
			Content:   "Place QR codes at all service points that customers can scan to provide immediate feedback on their experience.",
			Timestamp: "1 month ago", SortDate: now.Add(-30 * 24 * time.Hour),
			Upvotes: 45, Downvotes: 2,
			Tags: []string{"My Idea", "Feedback"}, AuthorRef: "1", Status: models.StatusApproved,
		},
		{
			ID: 203, Title: "Financial Literacy Workshops",
			Content:   "Host monthly workshops to educate customers on personal finance, investments, and retirement planning.",
			Timestamp: "3 weeks ago", SortDate: now.Add(-21 * 24 * time.Hour),
			Upvotes: 32, Downvotes: 1,
			Tags: []string{"My Idea", "Community"}, AuthorRef: "1", Status: models.StatusPending,
		},
		{
			ID: 204, Title: "Green Banking Initiative",
			Content:   "Implement paperless processes and sustainable practices across all branches to reduce environmental impact.",
			Timestamp: "2 weeks ago", SortDate: now.Add(-14 * 24 * time.Hour),
			Upvotes: 28, Downvotes: 3,
			Tags: []string{"My Idea", "Sustainability"}, AuthorRef: "1", Status: models.StatusPending,
		},
	}
}

// AdminIdeas is the admin-picks feed source.
func AdminIdeas(now time.Time) []models.Idea {
	return []models.Idea{
		{
			ID: 301, Title: "Automated Compliance Reporting",
			Content:   "Create an automated system for generating compliance reports to reduce manual work and ensure accuracy.",
			Timestamp: "2 weeks ago", SortDate: now.Add(-14 * 24 * time.Hour),
			Upvotes: 42, Downvotes: 3,
			Tags: []string{"Admin", "Compliance", "Automation"}, AuthorRef: "2", Status: models.StatusImplemented,
		},
		{
			ID: 302, Title: "Employee Recognition Program",
			Content:   "Implement a peer-to-peer recognition system where employees can acknowledge colleagues' contributions.",
			Timestamp: "3 weeks ago", SortDate: now.Add(-21 * 24 * time.Hour),
			Upvotes: 38, Downvotes: 0,
			Tags: []string{"Admin", "HR"}, AuthorRef: "2", Status: models.StatusApproved,
		},
		{
			ID: 303, Title: "Cross-Department Collaboration Spaces",
			Content:   "Create dedicated physical and virtual spaces for cross-functional teams to collaborate on projects.",
			Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour),
			Upvotes: 29, Downvotes: 2,
			Tags: []string{"Admin", "Collaboration"}, AuthorRef: "2", Status: models.StatusPending,
		},
		{
			ID: 304, Title: "Leadership Development Program",
			Content:   "Establish a structured program to identify and develop future leaders within the organization.",
			Timestamp: "2 months ago", SortDate: now.Add(-60 * 24 * time.Hour),
			Upvotes: 25, Downvotes: 1,
			Tags: []string{"Admin", "Training"}, AuthorRef: "2", Status: models.StatusPending,
		},
	}
}

// PopularIdeas is the trending feed source.
func PopularIdeas(now time.Time) []models.Idea {
	return []models.Idea{
		{
			ID: 101, Title: "AI-Powered Customer Service Chatbot",
			Content:   "Implement an advanced AI chatbot to handle routine customer inquiries and provide 24/7 support.",
			Timestamp: "2 days ago", SortDate: now.Add(-2 * 24 * time.Hour),
			Upvotes: 156, Downvotes: 10,
			Tags: []string{"Popular", "AI", "Customer Service"}, AuthorRef: "EMP2001", Status: models.StatusPending,
		},
		{
			ID: 102, Title: "Biometric ATM Authentication",
			Content:   "Replace card-and-PIN at ATMs with fingerprint and face recognition for faster, safer withdrawals.",
			Timestamp: "4 days ago", SortDate: now.Add(-4 * 24 * time.Hour),
			Upvotes: 132, Downvotes: 8,
			Tags: []string{"Popular", "Security"}, AuthorRef: "EMP2004", Status: models.StatusApproved,
		},
		{
			ID: 103, Title: "Instant Loan Pre-Approval",
			Content:   "Offer instant pre-approval decisions on personal loans using existing account history.",
			Timestamp: "1 week ago", SortDate: now.Add(-7 * 24 * time.Hour),
			Upvotes: 118, Downvotes: 12,
			Tags: []string{"Popular", "Lending"}, AuthorRef: "EMP2005", Status: models.StatusPending,
		},
	}
}

// Apply loads the fixtures into the given repositories. Safe to call on
// an empty store only; it does not deduplicate against existing data.
func Apply(ideas interface{ Seed([]models.Idea) }, users repository.Users, now time.Time) error {
	ideas.Seed(BoardIdeas(now))

	accounts, err := Users()
	if err != nil {
		return err
	}
	for _, u := range accounts {
		if _, err := users.Create(u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.EmployeeID, err)
		}
	}
	return nil
}
