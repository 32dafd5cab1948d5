package stash

const scrapedTagFields = `
fragment ScrapedTagFields on ScrapedTag {
  stored_id
  name
}
`

const scrapedStudioFields = `
fragment ScrapedStudioFields on ScrapedStudio {
  stored_id
  name
  url
  image
  remote_site_id
}
`

const scrapedPerformerFields = `
fragment ScrapedPerformerFields on ScrapedPerformer {
  stored_id
  name
  gender
  url
  twitter
  instagram
  birthdate
  ethnicity
  country
  eye_color
  height
  measurements
  fake_tits
  career_length
  tattoos
  piercings
  aliases
  tags { ...ScrapedTagFields }
  images
  details
  death_date
  hair_color
  weight
  remote_site_id
}
` + scrapedTagFields

const scrapedMovieFields = `
fragment ScrapedMovieFields on ScrapedMovie {
  stored_id
  name
  aliases
  duration
  date
  rating
  director
  synopsis
  url
  studio { ...ScrapedStudioFields }
  front_image
  back_image
}
`

const scrapedSceneFields = `
fragment ScrapedSceneFields on ScrapedScene {
  title
  details
  url
  date
  image
  studio { ...ScrapedStudioFields }
  tags { ...ScrapedTagFields }
  performers { ...ScrapedPerformerFields }
  movies { ...ScrapedMovieFields }
  remote_site_id
  duration
  fingerprints { algorithm hash duration }
}
` + scrapedPerformerFields + scrapedMovieFields + scrapedStudioFields

const scrapedGalleryFields = `
fragment ScrapedGalleryFields on ScrapedGallery {
  title
  details
  url
  date
  studio { ...ScrapedStudioFields }
  tags { ...ScrapedTagFields }
  performers { ...ScrapedPerformerFields }
}
` + scrapedPerformerFields + scrapedStudioFields

const findTagsQuery = `
query FindTags($filter: FindFilterType) {
  findTags(filter: $filter) {
    tags { id name aliases }
  }
}`

const createTagMutation = `
mutation TagCreate($input: TagCreateInput!) {
  tagCreate(input: $input) { id }
}`

const destroyTagMutation = `
mutation TagDestroy($input: TagDestroyInput!) {
  tagDestroy(input: $input)
}`

const findScenesQuery = `
query FindScenes($filter: FindFilterType, $scene_filter: SceneFilterType) {
  findScenes(filter: $filter, scene_filter: $scene_filter) {
    count
    scenes {
      id
      title
      details
      url
      date
      checksum
      oshash
      phash
      file { duration }
      tags { id }
      stash_ids { endpoint stash_id }
      updated_at
    }
  }
}`

const findGalleriesQuery = `
query FindGalleries($filter: FindFilterType, $gallery_filter: GalleryFilterType) {
  findGalleries(filter: $filter, gallery_filter: $gallery_filter) {
    galleries { id title details url date tags { id } }
  }
}`

const findPerformerItemsQuery = `
query FindPerformers($filter: FindFilterType, $performer_filter: PerformerFilterType) {
  findPerformers(filter: $filter, performer_filter: $performer_filter) {
    performers { id name details url tags { id } }
  }
}`

const findMovieItemsQuery = `
query FindMovies($filter: FindFilterType, $movie_filter: MovieFilterType) {
  findMovies(filter: $filter, movie_filter: $movie_filter) {
    movies { id name url date }
  }
}`

const searchPerformersQuery = `
query SearchPerformers($filter: FindFilterType) {
  findPerformers(filter: $filter) {
    performers { id name aliases }
  }
}`

const searchStudiosQuery = `
query SearchStudios($filter: FindFilterType, $studio_filter: StudioFilterType) {
  findStudios(filter: $filter, studio_filter: $studio_filter) {
    studios { id name url aliases }
  }
}`

const searchMoviesQuery = `
query SearchMovies($filter: FindFilterType) {
  findMovies(filter: $filter) {
    movies { id name aliases }
  }
}`

const createPerformerMutation = `
mutation PerformerCreate($input: PerformerCreateInput!) {
  performerCreate(input: $input) { id }
}`

const createStudioMutation = `
mutation StudioCreate($input: StudioCreateInput!) {
  studioCreate(input: $input) { id }
}`

const createMovieMutation = `
mutation MovieCreate($input: MovieCreateInput!) {
  movieCreate(input: $input) { id }
}`

const listSceneScrapersQuery = `
query ListSceneScrapers {
  listSceneScrapers { id name scene { supported_scrapes } }
}`

const listGalleryScrapersQuery = `
query ListGalleryScrapers {
  listGalleryScrapers { id name gallery { supported_scrapes } }
}`

const listPerformerScrapersQuery = `
query ListPerformerScrapers {
  listPerformerScrapers { id name performer { supported_scrapes } }
}`

const scrapeSceneURLQuery = `
query ScrapeSceneURL($url: String!) {
  scrapeSceneURL(url: $url) { ...ScrapedSceneFields }
}` + scrapedSceneFields

const scrapeGalleryURLQuery = `
query ScrapeGalleryURL($url: String!) {
  scrapeGalleryURL(url: $url) { ...ScrapedGalleryFields }
}` + scrapedGalleryFields

const scrapePerformerURLQuery = `
query ScrapePerformerURL($url: String!) {
  scrapePerformerURL(url: $url) { ...ScrapedPerformerFields }
}` + scrapedPerformerFields

const scrapeMovieURLQuery = `
query ScrapeMovieURL($url: String!) {
  scrapeMovieURL(url: $url) { ...ScrapedMovieFields }
}` + scrapedMovieFields + scrapedStudioFields

const scrapeSingleSceneQuery = `
query ScrapeSingleScene($source: ScraperSourceInput!, $input: ScrapeSingleSceneInput!) {
  scrapeSingleScene(source: $source, input: $input) { ...ScrapedSceneFields }
}` + scrapedSceneFields

const scrapeGalleryQuery = `
query ScrapeGallery($scraper_id: ID!, $gallery: GalleryUpdateInput!) {
  scrapeGallery(scraper_id: $scraper_id, gallery: $gallery) { ...ScrapedGalleryFields }
}` + scrapedGalleryFields

const scrapePerformerQuery = `
query ScrapePerformer($scraper_id: ID!, $performer: ScrapedPerformerInput!) {
  scrapePerformer(scraper_id: $scraper_id, performer: $performer) { ...ScrapedPerformerFields }
}` + scrapedPerformerFields

const sceneUpdateMutation = `
mutation SceneUpdate($input: SceneUpdateInput!) {
  sceneUpdate(input: $input) { id }
}`

const galleryUpdateMutation = `
mutation GalleryUpdate($input: GalleryUpdateInput!) {
  galleryUpdate(input: $input) { id }
}`

const performerUpdateMutation = `
mutation PerformerUpdate($input: PerformerUpdateInput!) {
  performerUpdate(input: $input) { id }
}`

const movieUpdateMutation = `
mutation MovieUpdate($input: MovieUpdateInput!) {
  movieUpdate(input: $input) { id }
}`

const studioUpdateMutation = `
mutation StudioUpdate($input: StudioUpdateInput!) {
  studioUpdate(input: $input) { id }
}`

const tagUpdateMutation = `
mutation TagUpdate($input: TagUpdateInput!) {
  tagUpdate(input: $input) { id }
}`

const bulkSceneUpdateMutation = `
mutation BulkSceneUpdate($input: BulkSceneUpdateInput!) {
  bulkSceneUpdate(input: $input) { id }
}`

const bulkGalleryUpdateMutation = `
mutation BulkGalleryUpdate($input: BulkGalleryUpdateInput!) {
  bulkGalleryUpdate(input: $input) { id }
}`

const bulkPerformerUpdateMutation = `
mutation BulkPerformerUpdate($input: BulkPerformerUpdateInput!) {
  bulkPerformerUpdate(input: $input) { id }
}`

const stashBoxesQuery = `
query StashBoxes {
  configuration { general { stashBoxes { name endpoint api_key } } }
}`

const queryStashBoxSceneQuery = `
query QueryStashBoxScene($input: StashBoxSceneQueryInput!) {
  queryStashBoxScene(input: $input) { ...ScrapedSceneFields }
}` + scrapedSceneFields

const submitFingerprintsMutation = `
mutation SubmitStashBoxFingerprints($input: StashBoxFingerprintSubmissionInput!) {
  submitStashBoxFingerprints(input: $input)
}`

const metadataIdentifyMutation = `
mutation MetadataIdentify($input: IdentifyMetadataInput!) {
  metadataIdentify(input: $input)
}`
