package yearbook

import (
	"testing"
	"time"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScope entity.ScopeID = "school-1:2024:12-a"

func newUser(position int, name string, submitted bool) *entity.User {
	return &entity.User{
		ID:            uuid.New(),
		Scope:         testScope,
		Email:         name + "@example.com",
		Name:          name,
		Role:          entity.RoleStudent,
		Registered:    true,
		PageSubmitted: submitted,
		Position:      position,
		InvitedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRender_NoDesign(t *testing.T) {
	users := []*entity.User{newUser(1, "ada", true)}

	book, err := Render(nil, users, nil)
	assert.Nil(t, book)
	assert.ErrorIs(t, err, domainerrors.ErrNoContent)
}

func TestRender_NoSubmittedUsers(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)
	users := []*entity.User{newUser(1, "ada", false), newUser(2, "bob", false)}

	book, err := Render(design, users, nil)
	assert.Nil(t, book)
	assert.ErrorIs(t, err, domainerrors.ErrNoContent)

	book, err = Render(design, nil, nil)
	assert.Nil(t, book)
	assert.ErrorIs(t, err, domainerrors.ErrNoContent)
}

func TestRender_ExcludesUnsubmittedAndKeepsRosterOrder(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)
	first := newUser(1, "zoe", true)
	skipped := newUser(2, "amy", false)
	third := newUser(3, "bob", true)
	// Passed out of order on purpose: the roster position decides.
	users := []*entity.User{third, skipped, first}

	book, err := Render(design, users, map[uuid.UUID]*entity.PageEntry{})
	require.NoError(t, err)
	require.Len(t, book.Pages, 2)

	assert.Equal(t, first.ID, book.Pages[0].Student.UserID)
	assert.Equal(t, third.ID, book.Pages[1].Student.UserID)
	for _, page := range book.Pages {
		assert.NotEqual(t, skipped.ID, page.Student.UserID)
	}
	// Input slice is untouched.
	assert.Equal(t, third.ID, users[0].ID)
}

func TestRender_CoversWrapStudentPages(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)
	design.FrontCovers = []entity.CoverItem{
		{Type: entity.CoverMediaImage, URL: "/uploads/design/front-1.png"},
		{Type: entity.CoverMediaVideo, URL: "/uploads/design/front-2.mp4"},
	}
	design.BackCovers = []entity.CoverItem{
		{Type: entity.CoverMediaImage, URL: "/uploads/design/back.png"},
	}
	user := newUser(1, "ada", true)

	book, err := Render(design, []*entity.User{user}, nil)
	require.NoError(t, err)
	require.Len(t, book.Pages, 4)

	kinds := make([]PageKind, 0, len(book.Pages))
	for i, page := range book.Pages {
		assert.Equal(t, i, page.Index)
		kinds = append(kinds, page.Kind)
	}
	assert.Equal(t, []PageKind{PageKindFrontCover, PageKindFrontCover, PageKindStudent, PageKindBackCover}, kinds)
	assert.Equal(t, "/uploads/design/front-2.mp4", book.Pages[1].Cover.URL)
	assert.Equal(t, "/uploads/design/back.png", book.Pages[3].Cover.URL)
}

func TestRender_PlaceholdersForEmptyPage(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)
	user := newUser(1, "", true)

	book, err := Render(design, []*entity.User{user}, nil)
	require.NoError(t, err)

	student := book.Pages[0].Student
	assert.True(t, student.Placeholder)
	assert.Equal(t, PlaceholderName, student.Name)
	assert.Equal(t, PlaceholderQuote, student.Quote)
	assert.Equal(t, PlaceholderMemories, student.Memories)
	assert.Equal(t, PlaceholderPhotoURL, student.ProfilePhotoURL)
	assert.Empty(t, student.GalleryPhotoURLs)
	assert.Equal(t, design.PageSettings, student.Style)
}

func TestRender_ProfilePhotoFallbackChain(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)

	tests := []struct {
		name      string
		pagePhoto string
		userPhoto string
		want      string
	}{
		{name: "page photo wins", pagePhoto: "/uploads/p.png", userPhoto: "/uploads/u.png", want: "/uploads/p.png"},
		{name: "roster photo next", pagePhoto: "", userPhoto: "/uploads/u.png", want: "/uploads/u.png"},
		{name: "placeholder last", pagePhoto: "", userPhoto: "", want: PlaceholderPhotoURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := newUser(1, "ada", true)
			user.PhotoURL = tt.userPhoto
			pages := map[uuid.UUID]*entity.PageEntry{
				user.ID: {UserID: user.ID, Quote: "hello", ProfilePhotoURL: tt.pagePhoto},
			}

			book, err := Render(design, []*entity.User{user}, pages)
			require.NoError(t, err)
			assert.Equal(t, tt.want, book.Pages[0].Student.ProfilePhotoURL)
			assert.Equal(t, "hello", book.Pages[0].Student.Quote)
			assert.False(t, book.Pages[0].Student.Placeholder)
		})
	}
}

func TestRender_IsPure(t *testing.T) {
	design := entity.DefaultDesignSettings(testScope)
	design.FrontCovers = []entity.CoverItem{{Type: entity.CoverMediaImage, URL: "/uploads/design/front.png"}}
	a := newUser(1, "ada", true)
	b := newUser(2, "bob", true)
	pages := map[uuid.UUID]*entity.PageEntry{
		a.ID: {UserID: a.ID, Quote: "q", Memories: "m", GalleryPhotoURLs: []string{"/uploads/g1.png"}},
	}
	users := []*entity.User{a, b}

	first, err := Render(design, users, pages)
	require.NoError(t, err)
	second, err := Render(design, users, pages)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Mutating the output never leaks into the inputs.
	first.Pages[1].Student.GalleryPhotoURLs[0] = "changed"
	assert.Equal(t, "/uploads/g1.png", pages[a.ID].GalleryPhotoURLs[0])
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		ref  string
		want MediaType
	}{
		{"/uploads/a.png", MediaImage},
		{"/uploads/a.MP4", MediaVideo},
		{"/uploads/a.webm?x=1", MediaVideo},
		{"https://picsum.photos/seed/student-preview/400/400", MediaImage},
		{"", MediaImage},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMediaType(tt.ref))
		})
	}
}
