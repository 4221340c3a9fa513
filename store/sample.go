// ABOUTME: Built-in sample pipeline used when no other deals are loaded
// ABOUTME: Six deals covering every stage, with contacts, activities and files
package store

import "github.com/harperreed/dealgrid/models"

// SampleDeals returns a fresh copy of the demo pipeline.
func SampleDeals() []models.Deal {
	return []models.Deal{
		{
			ID:           "1",
			Name:         "Enterprise Software License - Q1 2024",
			Stage:        models.StageNegotiation,
			Owner:        models.Owner{Name: "Sarah Johnson", Initials: "SJ"},
			Company:      "TechCorp Inc.",
			Amount:       models.Dollars(125000),
			Probability:  85,
			CloseDate:    "2024-02-15",
			LastActivity: "2024-01-10",
			Priority:     models.PriorityHigh,
			Source:       "Website",
			Tags:         []string{"Enterprise", "Software", "Multi-Year"},
			Contact:      &models.Contact{Name: "John Smith", Email: "john.smith@techcorp.com", Phone: "+1 (555) 123-4567"},
			Description:  "Multi-year enterprise software licensing deal for their global operations with advanced security features.",
			Activities: []models.Activity{
				{Type: "Meeting", Description: "Product demo with technical team", Date: "2024-01-10"},
				{Type: "Call", Description: "Follow-up call with CTO", Date: "2024-01-08"},
				{Type: "Email", Description: "Sent proposal and pricing", Date: "2024-01-05"},
			},
			Files: []models.File{
				{Name: "Proposal_TechCorp_v2.pdf", Size: "2.4 MB"},
				{Name: "Technical_Requirements.docx", Size: "1.1 MB"},
			},
		},
		{
			ID:           "2",
			Name:         "Marketing Automation Platform - Growth Plan",
			Stage:        models.StageQualified,
			Owner:        models.Owner{Name: "Mike Chen", Initials: "MC"},
			Company:      "StartupXYZ",
			Amount:       models.Dollars(45000),
			Probability:  60,
			CloseDate:    "2024-03-01",
			LastActivity: "2024-01-08",
			Priority:     models.PriorityMedium,
			Source:       "Referral",
			Tags:         []string{"Marketing", "SaaS", "Automation"},
			Contact:      &models.Contact{Name: "Lisa Wong", Email: "lisa@startupxyz.com", Phone: "+1 (555) 987-6543"},
			Description:  "Marketing automation platform for lead nurturing and customer engagement campaigns, focusing on growth.",
			Activities: []models.Activity{
				{Type: "Email", Description: "Sent case studies and ROI analysis", Date: "2024-01-08"},
				{Type: "Call", Description: "Discovery call with marketing team", Date: "2024-01-06"},
			},
			Files: []models.File{
				{Name: "ROI_Analysis_StartupXYZ.xlsx", Size: "856 KB"},
				{Name: "Case_Studies.pdf", Size: "3.2 MB"},
			},
		},
		{
			ID:           "3",
			Name:         "Custom Development Project - Revamp",
			Stage:        models.StageProposal,
			Owner:        models.Owner{Name: "Emily Rodriguez", Initials: "ER"},
			Company:      "Global Solutions Ltd",
			Amount:       models.Dollars(89000),
			Probability:  70,
			CloseDate:    "2024-02-28",
			LastActivity: "2024-01-09",
			Priority:     models.PriorityHigh,
			Source:       "Cold Outreach",
			Tags:         []string{"Development", "Custom", "Web App"},
			Contact:      &models.Contact{Name: "David Wilson", Email: "david@globalsolutions.com", Phone: "+1 (555) 456-7890"},
			Description:  "Custom web application development with advanced features and a complete UI/UX revamp.",
			Activities: []models.Activity{
				{Type: "Meeting", Description: "Requirements gathering session", Date: "2024-01-09"},
			},
			Files: []models.File{{Name: "Project_Scope.pdf", Size: "1.8 MB"}},
		},
		{
			ID:           "4",
			Name:         "Cloud Infrastructure Setup - Migration",
			Stage:        models.StageNew,
			Owner:        models.Owner{Name: "David Kim", Initials: "DK"},
			Company:      "MedTech Solutions",
			Amount:       models.Dollars(67000),
			Probability:  30,
			CloseDate:    "2024-04-15",
			LastActivity: "2024-01-05",
			Priority:     models.PriorityMedium,
			Source:       "Trade Show",
			Tags:         []string{"Cloud", "Infrastructure", "AWS"},
			Contact:      &models.Contact{Name: "Jennifer Lee", Email: "jennifer@medtech.com", Phone: "+1 (555) 234-5678"},
			Description:  "Complete cloud infrastructure migration and setup on AWS for enhanced scalability.",
			Activities: []models.Activity{
				{Type: "Call", Description: "Initial consultation", Date: "2024-01-05"},
			},
		},
		{
			ID:           "5",
			Name:         "Data Analytics Platform - FinanceFirst",
			Stage:        models.StageWon,
			Owner:        models.Owner{Name: "Lisa Wang", Initials: "LW"},
			Company:      "FinanceFirst Bank",
			Amount:       models.Dollars(156000),
			Probability:  100,
			CloseDate:    "2024-01-15",
			LastActivity: "2024-01-15",
			Priority:     models.PriorityCritical,
			Source:       "Partnership",
			Tags:         []string{"Analytics", "Finance", "Reporting"},
			Contact:      &models.Contact{Name: "Robert Chen", Email: "robert@financefirst.com", Phone: "+1 (555) 345-6789"},
			Description:  "Advanced data analytics platform for financial reporting and compliance.",
			Activities: []models.Activity{
				{Type: "Meeting", Description: "Contract signing", Date: "2024-01-15"},
			},
			Files: []models.File{{Name: "Signed_Contract.pdf", Size: "3.2 MB"}},
		},
		{
			ID:           "6",
			Name:         "Mobile App Development - RetailChain",
			Stage:        models.StageLost,
			Owner:        models.Owner{Name: "Tom Wilson", Initials: "TW"},
			Company:      "RetailChain Corp",
			Amount:       models.Dollars(78000),
			Probability:  0,
			CloseDate:    "2024-01-30",
			LastActivity: "2024-01-30",
			Priority:     models.PriorityLow,
			Source:       "Website",
			Tags:         []string{"Mobile", "Retail", "Customer App"},
			Contact:      &models.Contact{Name: "Maria Garcia", Email: "maria@retailchain.com", Phone: "+1 (555) 567-8901"},
			Description:  "Mobile application for retail customer engagement and loyalty program.",
			Activities: []models.Activity{
				{Type: "Email", Description: "Final follow-up", Date: "2024-01-30"},
			},
		},
	}
}
