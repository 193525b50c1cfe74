package models

// Blog is a single post. Dates are stored at day granularity (YYYY-MM-DD);
// CreatedAt equals UpdatedAt at creation time.
type Blog struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  int    `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BlogWithAuthor is a Blog joined with its author's email, the shape served
// by the public list/get endpoints.
type BlogWithAuthor struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    int    `json:"author_id"`
	AuthorEmail string `json:"author_email"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Blog returns the post without the joined author email.
func (b BlogWithAuthor) Blog() Blog {
	return Blog{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		AuthorID:  b.AuthorID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
