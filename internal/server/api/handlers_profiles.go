package api

import (
	"database/sql"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvaldesc/conecta-api/internal/server/auth"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	"github.com/mvaldesc/conecta-api/internal/server/services"
)

type profileResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CoverImage   *string    `json:"cover_image"`
	Image1       *string    `json:"image_1"`
	Image2       *string    `json:"image_2"`
	Image3       *string    `json:"image_3"`
	Description  *string    `json:"description"`
	WhatsappLink *string    `json:"whatsapp_link"`
	FacebookLink *string    `json:"facebook_link"`
	UserID       string     `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type profileSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CoverImage *string `json:"cover_image"`
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// imageURL turns a stored object key into a short-lived presigned URL.
func (a *API) imageURL(c *gin.Context, key sql.NullString) (*string, error) {
	if !key.Valid || key.String == "" {
		return nil, nil
	}
	url, err := a.images.GetPresignedGetURL(c.Request.Context(), key.String)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (a *API) toProfileResponse(c *gin.Context, p *models.Profile) (profileResponse, error) {
	r := profileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  nullableString(p.Description),
		WhatsappLink: nullableString(p.WhatsappLink),
		FacebookLink: nullableString(p.FacebookLink),
		UserID:       p.UserID,
		CreatedAt:    p.CreatedAt,
	}
	if p.UpdatedAt.Valid {
		t := p.UpdatedAt.Time
		r.UpdatedAt = &t
	}

	var err error
	if r.CoverImage, err = a.imageURL(c, p.CoverImage); err != nil {
		return r, err
	}
	if r.Image1, err = a.imageURL(c, p.Image1); err != nil {
		return r, err
	}
	if r.Image2, err = a.imageURL(c, p.Image2); err != nil {
		return r, err
	}
	if r.Image3, err = a.imageURL(c, p.Image3); err != nil {
		return r, err
	}
	return r, nil
}

// getAllProfiles is public and returns the directory listing: id, name, and
// cover image only.
func (a *API) getAllProfiles(c *gin.Context) {
	profiles, err := a.profiles.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]profileSummary, 0, len(profiles))
	for _, p := range profiles {
		cover, err := a.imageURL(c, p.CoverImage)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		out = append(out, profileSummary{ID: p.ID, Name: p.Name, CoverImage: cover})
	}
	c.JSON(http.StatusOK, out)
}

// getProfile is public.
func (a *API) getProfile(c *gin.Context) {
	profile, err := a.profiles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	a.respondProfile(c, profile)
}

func (a *API) getMyProfile(c *gin.Context) {
	profile, err := a.profiles.GetByUserID(c.Request.Context(), identity(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	a.respondProfile(c, profile)
}

// updateMyProfile updates the caller's own profile from a multipart form.
func (a *API) updateMyProfile(c *gin.Context) {
	profile, err := a.profiles.GetByUserID(c.Request.Context(), identity(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	a.updateProfileFromForm(c, profile.ID)
}

// updateProfile updates an arbitrary profile. Superuser or owner.
func (a *API) updateProfile(c *gin.Context) {
	profile, err := a.profiles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := auth.RequireSuperuserOrOwner(identity(c), profile.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	a.updateProfileFromForm(c, profile.ID)
}

func (a *API) updateProfileFromForm(c *gin.Context, profileID string) {
	name := c.PostForm("name")
	if name == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	upd := services.ProfileUpdate{
		Name:         &name,
		Description:  formValue(c, "description"),
		WhatsappLink: formValue(c, "whatsapp_link"),
		FacebookLink: formValue(c, "facebook_link"),
	}

	imageFields := []struct {
		field string
		dst   **string
	}{
		{"cover_image", &upd.CoverImage},
		{"image_1", &upd.Image1},
		{"image_2", &upd.Image2},
		{"image_3", &upd.Image3},
	}
	for _, f := range imageFields {
		key, err := a.uploadFormImage(c, f.field)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		*f.dst = key
	}

	profile, err := a.profiles.Update(c.Request.Context(), profileID, upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	a.respondProfile(c, profile)
}

// uploadFormImage stores the uploaded file for the given form field and
// returns its object key, or nil when the field was not sent.
func (a *API) uploadFormImage(c *gin.Context, field string) (*string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Field not sent; the image slot stays as it is.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// One byte past the cap is enough for the service to reject the upload.
	data, err := io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	key, err := a.images.Upload(c.Request.Context(), fh.Filename, data)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func formValue(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok {
		return &v
	}
	return nil
}

func (a *API) respondProfile(c *gin.Context, p *models.Profile) {
	resp, err := a.toProfileResponse(c, p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
