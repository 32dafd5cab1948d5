package catalog

// Update is a normalized update payload for one catalog entity. Nil pointer
// and empty slice fields are omitted from the wire payload so they leave the
// catalog value untouched.
type Update interface {
	Kind() Kind
	TargetID() string
}

// Taggable is implemented by updates that carry a tag id set.
type Taggable interface {
	Update
	TagSet() []string
	SetTagSet(ids []string)
}

// SceneMovie links a scene to a movie.
type SceneMovie struct {
	MovieID    string `json:"movie_id"`
	SceneIndex *int   `json:"scene_index,omitempty"`
}

type SceneUpdate struct {
	ID           string       `json:"id"`
	Title        *string      `json:"title,omitempty"`
	Details      *string      `json:"details,omitempty"`
	URL          *string      `json:"url,omitempty"`
	Date         *string      `json:"date,omitempty"`
	StudioID     *string      `json:"studio_id,omitempty"`
	PerformerIDs []string     `json:"performer_ids,omitempty"`
	Movies       []SceneMovie `json:"movies,omitempty"`
	TagIDs       []string     `json:"tag_ids,omitempty"`
	CoverImage   *string      `json:"cover_image,omitempty"`
	StashIDs     []StashID    `json:"stash_ids,omitempty"`
}

type GalleryUpdate struct {
	ID           string   `json:"id"`
	Title        *string  `json:"title,omitempty"`
	Details      *string  `json:"details,omitempty"`
	URL          *string  `json:"url,omitempty"`
	Date         *string  `json:"date,omitempty"`
	StudioID     *string  `json:"studio_id,omitempty"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty"`
}

type PerformerUpdate struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name,omitempty"`
	URL          *string   `json:"url,omitempty"`
	Gender       *Gender   `json:"gender,omitempty"`
	Birthdate    *string   `json:"birthdate,omitempty"`
	Ethnicity    *string   `json:"ethnicity,omitempty"`
	Country      *string   `json:"country,omitempty"`
	EyeColor     *string   `json:"eye_color,omitempty"`
	Height       *string   `json:"height,omitempty"`
	Measurements *string   `json:"measurements,omitempty"`
	FakeTits     *string   `json:"fake_tits,omitempty"`
	CareerLength *string   `json:"career_length,omitempty"`
	Tattoos      *string   `json:"tattoos,omitempty"`
	Piercings    *string   `json:"piercings,omitempty"`
	Aliases      *string   `json:"aliases,omitempty"`
	Twitter      *string   `json:"twitter,omitempty"`
	Instagram    *string   `json:"instagram,omitempty"`
	TagIDs       []string  `json:"tag_ids,omitempty"`
	Image        *string   `json:"image,omitempty"`
	StashIDs     []StashID `json:"stash_ids,omitempty"`
	Details      *string   `json:"details,omitempty"`
	DeathDate    *string   `json:"death_date,omitempty"`
	HairColor    *string   `json:"hair_color,omitempty"`
	Weight       *int      `json:"weight,omitempty"`
}

type MovieUpdate struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Aliases    *string `json:"aliases,omitempty"`
	Duration   *int    `json:"duration,omitempty"`
	Date       *string `json:"date,omitempty"`
	StudioID   *string `json:"studio_id,omitempty"`
	Director   *string `json:"director,omitempty"`
	Synopsis   *string `json:"synopsis,omitempty"`
	URL        *string `json:"url,omitempty"`
	FrontImage *string `json:"front_image,omitempty"`
	BackImage  *string `json:"back_image,omitempty"`
}

type StudioUpdate struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	URL   *string `json:"url,omitempty"`
	Image *string `json:"image,omitempty"`
}

type TagUpdate struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
}

func (*SceneUpdate) Kind() Kind     { return KindScene }
func (*GalleryUpdate) Kind() Kind   { return KindGallery }
func (*PerformerUpdate) Kind() Kind { return KindPerformer }
func (*MovieUpdate) Kind() Kind     { return KindMovie }
func (*StudioUpdate) Kind() Kind    { return KindStudio }
func (*TagUpdate) Kind() Kind       { return KindTag }

func (u *SceneUpdate) TargetID() string     { return u.ID }
func (u *GalleryUpdate) TargetID() string   { return u.ID }
func (u *PerformerUpdate) TargetID() string { return u.ID }
func (u *MovieUpdate) TargetID() string     { return u.ID }
func (u *StudioUpdate) TargetID() string    { return u.ID }
func (u *TagUpdate) TargetID() string       { return u.ID }

func (u *SceneUpdate) TagSet() []string           { return u.TagIDs }
func (u *SceneUpdate) SetTagSet(ids []string)     { u.TagIDs = ids }
func (u *GalleryUpdate) TagSet() []string         { return u.TagIDs }
func (u *GalleryUpdate) SetTagSet(ids []string)   { u.TagIDs = ids }
func (u *PerformerUpdate) TagSet() []string       { return u.TagIDs }
func (u *PerformerUpdate) SetTagSet(ids []string) { u.TagIDs = ids }

// PerformerCreate is the input used when the resolver creates a performer.
type PerformerCreate struct {
	Name     string    `json:"name"`
	URL      *string   `json:"url,omitempty"`
	Gender   *Gender   `json:"gender,omitempty"`
	StashIDs []StashID `json:"stash_ids,omitempty"`
}

// StudioCreate is the input used when the resolver creates a studio.
type StudioCreate struct {
	Name string  `json:"name"`
	URL  *string `json:"url,omitempty"`
}

// MovieCreate is the input used when the resolver creates a movie.
type MovieCreate struct {
	Name string  `json:"name"`
	URL  *string `json:"url,omitempty"`
}
