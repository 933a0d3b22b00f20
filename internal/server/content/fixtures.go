package content

import (
	"time"

	"github.com/mkalinins/commportal/internal/portal"
)

func (s *Store) seed() {
	s.news = []portal.NewsItem{
		{
			ID:       "n1",
			Title:    "Pool Maintenance Scheduled",
			Content:  "The community pool will be closed for annual maintenance from March 15-20. We apologize for any inconvenience.",
			Author:   "Property Management",
			Date:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Priority: portal.PriorityImportant,
		},
		{
			ID:       "n2",
			Title:    "Spring Community BBQ",
			Content:  "Join us for the annual spring BBQ on April 5th at the central courtyard. Food and drinks provided!",
			Author:   "Events Committee",
			Date:     time.Date(2025, 3, 8, 14, 30, 0, 0, time.UTC),
			Priority: portal.PriorityNormal,
		},
		{
			ID:       "n3",
			Title:    "Water Shutoff Notice",
			Content:  "Emergency water line repair on Building C. Water will be shut off tomorrow from 9 AM to 2 PM.",
			Author:   "Property Management",
			Date:     time.Date(2025, 3, 12, 16, 45, 0, 0, time.UTC),
			Priority: portal.PriorityUrgent,
		},
		{
			ID:       "n4",
			Title:    "New Recycling Guidelines",
			Content:  "Updated recycling guidelines are now in effect. Please review the sorting instructions posted near the bins.",
			Author:   "Green Committee",
			Date:     time.Date(2025, 3, 5, 11, 0, 0, 0, time.UTC),
			Priority: portal.PriorityNormal,
		},
	}

	s.rooms = []portal.ChatRoom{
		{ID: "r1", Name: "General Discussion", Description: "Open chat for all residents", Unread: 3},
		{ID: "r2", Name: "Buy & Sell", Description: "Community marketplace", Unread: 0},
		{ID: "r3", Name: "Maintenance Requests", Description: "Report and discuss maintenance issues", Unread: 1},
	}

	s.messages = map[string][]portal.Message{
		"r1": {
			{
				ID:        "m1",
				UserID:    "seed-1",
				UserName:  "Anna Berzina",
				Content:   "Has anyone seen the notice about the pool maintenance?",
				Timestamp: time.Date(2025, 3, 12, 10, 15, 0, 0, time.UTC),
			},
			{
				ID:        "m2",
				UserID:    "seed-2",
				UserName:  "Janis Liepins",
				Content:   "Yes, it starts next week. Good that they announced it early this time.",
				Timestamp: time.Date(2025, 3, 12, 10, 22, 0, 0, time.UTC),
			},
		},
		"r2": {},
		"r3": {
			{
				ID:        "m3",
				UserID:    "seed-3",
				UserName:  "Liga Kalnina",
				Content:   "The hallway light on floor 3 has been flickering for days.",
				Timestamp: time.Date(2025, 3, 11, 18, 40, 0, 0, time.UTC),
			},
		},
	}

	s.meetings = []portal.Meeting{
		{
			ID:       "mt1",
			Title:    "Monthly Board Meeting - March",
			Date:     "2025-03-01",
			VideoURL: "https://portal.test/recordings/board-march.mp4",
			AINotes:  "Approved the landscaping budget. Discussed elevator modernization quotes; decision deferred to April.",
			Status:   portal.MeetingCompleted,
		},
		{
			ID:     "mt2",
			Title:  "Monthly Board Meeting - April",
			Date:   "2025-04-05",
			Status: portal.MeetingScheduled,
		},
	}

	s.discussions = []portal.Discussion{
		{ID: "d1", Title: "Elevator modernization vendors", Author: "Bruno Krasts", Replies: 7, LastActivity: "2025-03-11"},
		{ID: "d2", Title: "Parking allocation review", Author: "Agnese Vilka", Replies: 12, LastActivity: "2025-03-09"},
	}

	s.documents = []portal.Document{
		{ID: "doc1", Name: "Annual Budget 2025", Category: portal.CategoryFinancial, Date: "2025-01-15", Size: "2.4 MB", URL: "https://portal.test/docs/budget-2025.pdf"},
		{ID: "doc2", Name: "Community Bylaws", Category: portal.CategoryLegal, Date: "2024-06-01", Size: "890 KB", URL: "https://portal.test/docs/bylaws.pdf"},
		{ID: "doc3", Name: "Insurance Policy", Category: portal.CategoryLegal, Date: "2024-12-10", Size: "1.1 MB", URL: "https://portal.test/docs/insurance.pdf"},
		{ID: "doc4", Name: "Q4 Financial Report", Category: portal.CategoryFinancial, Date: "2025-01-30", Size: "1.8 MB", URL: "https://portal.test/docs/q4-report.pdf"},
	}
}
