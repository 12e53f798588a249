package models

import "time"

// ApplicationStatus represents the processing state of an application
type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusScraping   ApplicationStatus = "scraping"
	StatusEvaluating ApplicationStatus = "evaluating"
	StatusQualified  ApplicationStatus = "qualified"
	StatusRejected   ApplicationStatus = "rejected"
	StatusError      ApplicationStatus = "error"
)

// IsTerminal reports whether no further automatic transition occurs from the status
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusQualified || s == StatusRejected || s == StatusError
}

// InFlightStatuses are the statuses that block a new application for the
// same (email, role) pair
var InFlightStatuses = []ApplicationStatus{
	StatusPending,
	StatusScraping,
	StatusEvaluating,
	StatusQualified,
}

// Education represents a single education entry from a scraped profile
type Education struct {
	School    string `json:"school" bson:"school"`
	Degree    string `json:"degree,omitempty" bson:"degree,omitempty"`
	Field     string `json:"field,omitempty" bson:"field,omitempty"`
	DateRange string `json:"date_range,omitempty" bson:"dateRange,omitempty"`
}

// Experience represents a single experience entry from a scraped profile
type Experience struct {
	Company     string `json:"company" bson:"company"`
	Title       string `json:"title" bson:"title"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	DateRange   string `json:"date_range,omitempty" bson:"dateRange,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// LinkedInProfile is the structured projection of a scraped profile, stored
// once scraping succeeds
type LinkedInProfile struct {
	Headline    string       `json:"headline,omitempty" bson:"headline,omitempty"`
	Location    string       `json:"location,omitempty" bson:"location,omitempty"`
	Summary     string       `json:"summary,omitempty" bson:"summary,omitempty"`
	Education   []Education  `json:"education" bson:"education"`
	Experience  []Experience `json:"experience" bson:"experience"`
	Skills      []string     `json:"skills" bson:"skills"`
	RawMarkdown string       `json:"raw_markdown" bson:"rawMarkdown"`
}

// Evaluation is the scorer verdict for a candidate. Bullets always has
// exactly 5 entries once an evaluation exists.
type Evaluation struct {
	Score       int       `json:"score" bson:"score"`
	Qualified   bool      `json:"qualified" bson:"qualified"`
	Bullets     []string  `json:"bullets" bson:"bullets"`
	Reasoning   string    `json:"reasoning" bson:"reasoning"`
	EvaluatedAt time.Time `json:"evaluated_at" bson:"evaluatedAt"`
}

// Notifications tracks delivery timestamps for the two side channels.
// Each is set independently and only on successful delivery.
type Notifications struct {
	EmailSentAt    *time.Time `json:"email_sent_at,omitempty" bson:"emailSentAt,omitempty"`
	ChatNotifiedAt *time.Time `json:"chat_notified_at,omitempty" bson:"chatNotifiedAt,omitempty"`
}

// Application is one candidate's attempt at one role, the aggregate record
// driving the whole workflow
type Application struct {
	ID string `json:"id" bson:"_id,omitempty"`

	// Candidate data, immutable after creation
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	LinkedInURL string `json:"linkedin_url" bson:"linkedinUrl"`
	Role        string `json:"role" bson:"role"`

	Status       ApplicationStatus `json:"status" bson:"status"`
	ErrorMessage string            `json:"error_message,omitempty" bson:"errorMessage,omitempty"`

	LinkedInProfile *LinkedInProfile `json:"linkedin_profile,omitempty" bson:"linkedinProfile,omitempty"`
	Evaluation      *Evaluation      `json:"evaluation,omitempty" bson:"evaluation,omitempty"`
	Notifications   Notifications    `json:"notifications" bson:"notifications"`

	// ScrapeRunID correlates the record to the in-flight scraping job
	ScrapeRunID string `json:"scrape_run_id,omitempty" bson:"scrapeRunId,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// ScrapedProfile is the raw single-item result returned by the profile
// scraping job, before projection into a LinkedInProfile
type ScrapedProfile struct {
	URL      string `json:"url,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Headline string `json:"headline,omitempty"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`

	Education  []ScrapedEducation  `json:"education,omitempty"`
	Experience []ScrapedExperience `json:"experience,omitempty"`
	Skills     []string            `json:"skills,omitempty"`
}

// ScrapedEducation is an education entry as returned by the scraper
type ScrapedEducation struct {
	SchoolName   string `json:"schoolName,omitempty"`
	DegreeName   string `json:"degreeName,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	DateRange    string `json:"dateRange,omitempty"`
}

// ScrapedExperience is an experience entry as returned by the scraper
type ScrapedExperience struct {
	CompanyName string `json:"companyName,omitempty"`
	Title       string `json:"title,omitempty"`
	Location    string `json:"location,omitempty"`
	DateRange   string `json:"dateRange,omitempty"`
	Description string `json:"description,omitempty"`
}
