package catalog

// ScrapedRecord is the closed set of scraper results the mapper accepts.
// Implementations: *ScrapedScene, *ScrapedGallery, *ScrapedPerformer,
// *ScrapedMovie, *ScrapedStudio, *ScrapedTag.
type ScrapedRecord interface {
	Kind() Kind
	// Empty reports whether no field carries data.
	Empty() bool
}

// ScrapedTag is a tag mention inside a scraped record.
type ScrapedTag struct {
	StoredID *string `json:"stored_id"`
	Name     string  `json:"name"`
}

// ScrapedStudio is a studio mention inside a scraped record.
type ScrapedStudio struct {
	StoredID     *string `json:"stored_id"`
	Name         string  `json:"name"`
	URL          *string `json:"url"`
	Image        *string `json:"image"`
	RemoteSiteID *string `json:"remote_site_id"`
}

// ScrapedPerformer is a performer result or a mention inside a scene.
type ScrapedPerformer struct {
	StoredID     *string      `json:"stored_id"`
	Name         *string      `json:"name"`
	Gender       *string      `json:"gender"`
	URL          *string      `json:"url"`
	Twitter      *string      `json:"twitter"`
	Instagram    *string      `json:"instagram"`
	Birthdate    *string      `json:"birthdate"`
	Ethnicity    *string      `json:"ethnicity"`
	Country      *string      `json:"country"`
	EyeColor     *string      `json:"eye_color"`
	Height       *string      `json:"height"`
	Measurements *string      `json:"measurements"`
	FakeTits     *string      `json:"fake_tits"`
	CareerLength *string      `json:"career_length"`
	Tattoos      *string      `json:"tattoos"`
	Piercings    *string      `json:"piercings"`
	Aliases      *string      `json:"aliases"`
	Tags         []ScrapedTag `json:"tags"`
	Images       []string     `json:"images"`
	Image        *string      `json:"image"`
	Details      *string      `json:"details"`
	DeathDate    *string      `json:"death_date"`
	HairColor    *string      `json:"hair_color"`
	Weight       *string      `json:"weight"`
	RemoteSiteID *string      `json:"remote_site_id"`

	// StashIDs is set by the fingerprint matcher, never by scrapers.
	StashIDs []StashID `json:"-"`
}

// ScrapedMovie is a movie result or a mention inside a scene.
type ScrapedMovie struct {
	StoredID   *string        `json:"stored_id"`
	Name       *string        `json:"name"`
	Aliases    *string        `json:"aliases"`
	Duration   *string        `json:"duration"`
	Date       *string        `json:"date"`
	Rating     *string        `json:"rating"`
	Director   *string        `json:"director"`
	URL        *string        `json:"url"`
	Synopsis   *string        `json:"synopsis"`
	Studio     *ScrapedStudio `json:"studio"`
	FrontImage *string        `json:"front_image"`
	BackImage  *string        `json:"back_image"`
}

// ScrapedGallery is a gallery scrape result.
type ScrapedGallery struct {
	Title      *string            `json:"title"`
	Details    *string            `json:"details"`
	URL        *string            `json:"url"`
	Date       *string            `json:"date"`
	Studio     *ScrapedStudio     `json:"studio"`
	Tags       []ScrapedTag       `json:"tags"`
	Performers []ScrapedPerformer `json:"performers"`
}

// ScrapedScene is a scene scrape result or a stash-box candidate.
type ScrapedScene struct {
	Title        *string            `json:"title"`
	Details      *string            `json:"details"`
	URL          *string            `json:"url"`
	Date         *string            `json:"date"`
	Image        *string            `json:"image"`
	File         *SceneFile         `json:"file"`
	Studio       *ScrapedStudio     `json:"studio"`
	Tags         []ScrapedTag       `json:"tags"`
	Performers   []ScrapedPerformer `json:"performers"`
	Movies       []ScrapedMovie     `json:"movies"`
	RemoteSiteID *string            `json:"remote_site_id"`
	Duration     *int               `json:"duration"`
	Fingerprints []Fingerprint      `json:"fingerprints"`

	// StashIDs is set by the fingerprint matcher, never by scrapers.
	StashIDs []StashID `json:"-"`
}

func (*ScrapedTag) Kind() Kind       { return KindTag }
func (*ScrapedStudio) Kind() Kind    { return KindStudio }
func (*ScrapedPerformer) Kind() Kind { return KindPerformer }
func (*ScrapedMovie) Kind() Kind     { return KindMovie }
func (*ScrapedGallery) Kind() Kind   { return KindGallery }
func (*ScrapedScene) Kind() Kind     { return KindScene }

func (t *ScrapedTag) Empty() bool {
	return t == nil || (!Present(t.StoredID) && !Present(&t.Name))
}

func (s *ScrapedStudio) Empty() bool {
	return s == nil || (!Present(&s.Name) && !anyPresent(s.StoredID, s.URL, s.Image, s.RemoteSiteID))
}

func (p *ScrapedPerformer) Empty() bool {
	if p == nil {
		return true
	}
	if len(p.Tags) > 0 || len(p.Images) > 0 {
		return false
	}
	return !anyPresent(
		p.StoredID, p.Name, p.Gender, p.URL, p.Twitter, p.Instagram, p.Birthdate,
		p.Ethnicity, p.Country, p.EyeColor, p.Height, p.Measurements, p.FakeTits,
		p.CareerLength, p.Tattoos, p.Piercings, p.Aliases, p.Image, p.Details,
		p.DeathDate, p.HairColor, p.Weight, p.RemoteSiteID,
	)
}

func (m *ScrapedMovie) Empty() bool {
	if m == nil {
		return true
	}
	if !m.Studio.Empty() {
		return false
	}
	return !anyPresent(
		m.StoredID, m.Name, m.Aliases, m.Duration, m.Date, m.Rating, m.Director,
		m.URL, m.Synopsis, m.FrontImage, m.BackImage,
	)
}

func (g *ScrapedGallery) Empty() bool {
	if g == nil {
		return true
	}
	if !g.Studio.Empty() || len(g.Tags) > 0 || len(g.Performers) > 0 {
		return false
	}
	return !anyPresent(g.Title, g.Details, g.URL, g.Date)
}

func (s *ScrapedScene) Empty() bool {
	if s == nil {
		return true
	}
	if !s.Studio.Empty() || len(s.Tags) > 0 || len(s.Performers) > 0 || len(s.Movies) > 0 {
		return false
	}
	if s.File != nil || s.Duration != nil || len(s.Fingerprints) > 0 {
		return false
	}
	return !anyPresent(s.Title, s.Details, s.URL, s.Date, s.Image, s.RemoteSiteID)
}
