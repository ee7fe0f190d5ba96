package api

import "time"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the authenticated backend account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Project is a marketing site project.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Article is a published or draft article belonging to a project.
type Article struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body,omitempty"`
	Status      string     `json:"status"`
	AuthorID    string     `json:"author_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ArticleInput is the create/update payload for an article.
type ArticleInput struct {
	ProjectID string `json:"project_id,omitempty"`
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	Body      string `json:"body,omitempty"`
	Status    string `json:"status,omitempty"`
	AuthorID  string `json:"author_id,omitempty"`
}

// Contributor is an author or editor shown on the site.
type Contributor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContributorInput is the create/update payload for a contributor.
type ContributorInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Form is a visitor-facing form definition.
type Form struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// FormSubmission is one submitted form entry.
type FormSubmission struct {
	ID          string            `json:"id"`
	FormID      string            `json:"form_id"`
	Fields      map[string]string `json:"fields"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// SocialLinks is the site-wide social link configuration. It is a
// singleton resource: one Get, one Put.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}
