package slide

// Slide is one image in the homepage rotation.
type Slide struct {
	ID           int    `json:"slideId"`
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	DisplayOrder int    `json:"displayOrder"`
}
