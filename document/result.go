package document

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningDroppedContent     WarningType = "dropped_content"
	WarningClampedHeading     WarningType = "clamped_heading"
	WarningEmptyTable         WarningType = "empty_table"
	WarningMissingImageSource WarningType = "missing_image_source"
	WarningUnresolvedAsset    WarningType = "unresolved_asset"
	WarningMissingImages      WarningType = "missing_images"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
