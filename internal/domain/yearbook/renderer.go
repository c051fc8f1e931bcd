// Package yearbook composes design settings and submitted pages into the flipbook page sequence.
package yearbook

import (
	"cmp"
	"path"
	"slices"
	"strings"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/google/uuid"
)

// Placeholder content for locked pages that were never filled in.
const (
	PlaceholderName     = "Student Name"
	PlaceholderQuote    = "The future belongs to those who believe in the beauty of their dreams."
	PlaceholderMemories = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation " +
		"ullamco laboris nisi ut aliquip ex ea commodo consequat."
	PlaceholderPhotoURL = "https://picsum.photos/seed/student-preview/400/400"
)

// PageKind distinguishes covers from student pages.
type PageKind string

const (
	PageKindFrontCover PageKind = "front-cover"
	PageKindStudent    PageKind = "student"
	PageKindBackCover  PageKind = "back-cover"
)

// MediaType is how a media reference should be displayed.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Book is the rendered flipbook.
type Book struct {
	Scope    entity.ScopeID          `json:"scope_id"`
	Flipbook entity.FlipbookSettings `json:"flipbook_settings"`
	Pages    []Page                  `json:"pages"`
}

// Page is one flipbook page: a cover or a student page.
type Page struct {
	Index   int               `json:"index"`
	Kind    PageKind          `json:"kind"`
	Cover   *entity.CoverItem `json:"cover,omitempty"`
	Student *StudentPage      `json:"student,omitempty"`
}

// StudentPage is a student's content resolved against placeholders and styled by the design.
type StudentPage struct {
	UserID           uuid.UUID           `json:"user_id"`
	Name             string              `json:"name"`
	Quote            string              `json:"quote"`
	Memories         string              `json:"memories"`
	ProfilePhotoURL  string              `json:"profile_photo_url"`
	ProfileMediaType MediaType           `json:"profile_media_type"`
	GalleryPhotoURLs []string            `json:"gallery_photo_urls"`
	Placeholder      bool                `json:"placeholder"` // True when the saved page was empty.
	Style            entity.PageSettings `json:"style"`
}

// Render composes the flipbook: front covers, then one page per submitted user in
// roster order, then back covers. It never mutates its inputs.
// It returns ErrNoContent when there is no design or no submitted page.
func Render(design *entity.DesignSettings, users []*entity.User, pages map[uuid.UUID]*entity.PageEntry) (*Book, error) {
	if design == nil {
		return nil, domainerrors.ErrNoContent.WithDetails("design settings missing")
	}

	submitted := make([]*entity.User, 0, len(users))
	for _, user := range users {
		if user != nil && user.PageSubmitted {
			submitted = append(submitted, user)
		}
	}
	if len(submitted) == 0 {
		return nil, domainerrors.ErrNoContent.WithDetails("no submitted pages")
	}

	slices.SortStableFunc(submitted, func(a, b *entity.User) int {
		return cmp.Compare(a.Position, b.Position)
	})

	book := &Book{
		Scope:    design.Scope,
		Flipbook: design.FlipbookSettings,
		Pages:    make([]Page, 0, len(design.FrontCovers)+len(submitted)+len(design.BackCovers)),
	}

	for _, cover := range design.FrontCovers {
		book.appendCover(PageKindFrontCover, cover)
	}
	for _, user := range submitted {
		book.Pages = append(book.Pages, Page{
			Index:   len(book.Pages),
			Kind:    PageKindStudent,
			Student: renderStudent(design.PageSettings, user, pages[user.ID]),
		})
	}
	for _, cover := range design.BackCovers {
		book.appendCover(PageKindBackCover, cover)
	}

	return book, nil
}

func (b *Book) appendCover(kind PageKind, cover entity.CoverItem) {
	item := cover
	b.Pages = append(b.Pages, Page{
		Index: len(b.Pages),
		Kind:  kind,
		Cover: &item,
	})
}

func renderStudent(style entity.PageSettings, user *entity.User, page *entity.PageEntry) *StudentPage {
	rendered := &StudentPage{
		UserID:           user.ID,
		Name:             firstNonEmpty(user.Name, PlaceholderName),
		Quote:            PlaceholderQuote,
		Memories:         PlaceholderMemories,
		ProfilePhotoURL:  firstNonEmpty(user.PhotoURL, PlaceholderPhotoURL),
		GalleryPhotoURLs: []string{},
		Placeholder:      page.IsEmpty(),
		Style:            style,
	}

	if page != nil {
		rendered.Quote = firstNonEmpty(page.Quote, PlaceholderQuote)
		rendered.Memories = firstNonEmpty(page.Memories, PlaceholderMemories)
		rendered.ProfilePhotoURL = firstNonEmpty(page.ProfilePhotoURL, user.PhotoURL, PlaceholderPhotoURL)
		rendered.GalleryPhotoURLs = append(rendered.GalleryPhotoURLs, page.GalleryPhotoURLs...)
	}
	rendered.ProfileMediaType = DetectMediaType(rendered.ProfilePhotoURL)

	return rendered
}

// DetectMediaType classifies a media reference by its file extension.
func DetectMediaType(ref string) MediaType {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}

	switch strings.ToLower(path.Ext(ref)) {
	case ".mp4", ".webm", ".mov", ".ogg", ".m4v":
		return MediaVideo
	default:
		return MediaImage
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
