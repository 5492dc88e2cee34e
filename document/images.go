package document

// Image is one entry of a document's image manifest.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ExtractImages collects every image node of the document in depth-first,
// left-to-right order. Repeated images are reported once per occurrence.
func ExtractImages(doc Doc) []Image {
	var images []Image

	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, node := range nodes {
			if node.Type == TypeImage {
				images = append(images, Image{
					URL:     node.GetStringAttr("src", ""),
					Caption: node.GetStringAttr("alt", ""),
				})
			}
			walk(node.Content)
		}
	}
	walk(doc.Content)

	return images
}
