package listing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldKind declares how a raw form value is coerced by SetField.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldBool
	FieldEnum
)

// PendingFile is a locally attached image file that has not been uploaded
// yet. The save orchestration uploads every pending file and substitutes
// the durable URL into the slot before the record is persisted.
type PendingFile struct {
	Filename string
	Data     []byte
}

// Draft is a single editable copy of a Property plus its image list,
// independent of persistence. It exclusively owns the in-progress edit;
// once saved, the repository is the source of truth again.
//
// Image operations follow an immutable update discipline: each one installs
// a freshly copied slice, so snapshots taken earlier are never mutated, and
// each maintains the invariant that a non-empty list has exactly one
// principal image.
type Draft struct {
	Property

	// pending tracks per-slot upload state, keyed by image ID.
	pending map[string]PendingFile
}

// NewDraft produces a fresh draft with sensible defaults and a placeholder
// identity recognizable by its prefix.
func NewDraft() *Draft {
	return &Draft{
		Property: Property{
			ID:            DraftIDPrefix + uuid.NewString(),
			Operation:     OperationSale,
			Type:          TypeApartment,
			Condition:     ConditionUsed,
			Furnished:     Unfurnished,
			Kitchen:       KitchenNone,
			Surveillance:  SurveillanceNone,
			Stratum:       intPtr(0),
			BuiltArea:     floatPtr(0),
			Bedrooms:      intPtr(0),
			FullBathrooms: intPtr(0),
			ParkingSpaces: intPtr(0),
			Features:      FeatureSet{},
			Status:        StatusDraft,
		},
	}
}

// DraftOf clones an existing property into draft state.
func DraftOf(p *Property) *Draft {
	return &Draft{Property: *p.Clone()}
}

// SetField coerces a raw form value according to the field's declared kind
// and assigns it. Numeric fields treat an empty string as 0; boolean fields
// accept checkbox-style values; text and enum values pass through. Unknown
// names that match an amenity flag toggle that flag; anything else is an
// error so typos surface during development instead of dropping input.
func (d *Draft) SetField(name, raw string) error {
	switch name {
	case "title":
		d.Title = raw
	case "description":
		d.Description = raw
	case "code":
		d.Code = strings.TrimSpace(raw)
	case "department":
		d.Department = raw
	case "city":
		d.City = raw
	case "neighborhood":
		d.Neighborhood = raw
	case "full_address":
		d.FullAddress = raw
	case "operation":
		d.Operation = OperationType(raw)
	case "property_type":
		d.Type = PropertyType(raw)
	case "condition":
		d.Condition = PropertyCondition(raw)
	case "furnished":
		d.Furnished = FurnishedState(raw)
	case "kitchen":
		d.Kitchen = KitchenType(raw)
	case "surveillance":
		d.Surveillance = SurveillanceType(raw)
	case "status":
		d.Status = PublicationStatus(raw)
	case "price":
		v, err := parseNumber(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.Price = v
	case "administration_fee":
		v, err := parseNumber(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.AdministrationFee = v
	case "built_area":
		v, err := parseNumber(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.BuiltArea = floatPtr(v)
	case "stratum":
		v, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.Stratum = intPtr(v)
	case "bedrooms":
		v, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.Bedrooms = intPtr(v)
	case "full_bathrooms":
		v, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.FullBathrooms = intPtr(v)
	case "parking_spaces":
		v, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		d.ParkingSpaces = intPtr(v)
	case "is_negotiable":
		d.IsNegotiable = parseCheckbox(raw)
	case "is_featured":
		d.IsFeatured = parseCheckbox(raw)
	default:
		if IsKnownFeature(name) {
			d.Features.Set(Feature(name), parseCheckbox(raw))
			return nil
		}
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// FieldKindOf reports the declared kind for a known field name.
func FieldKindOf(name string) (FieldKind, bool) {
	switch name {
	case "title", "description", "code", "department", "city", "neighborhood", "full_address":
		return FieldText, true
	case "price", "administration_fee", "built_area", "stratum", "bedrooms", "full_bathrooms", "parking_spaces":
		return FieldNumber, true
	case "is_negotiable", "is_featured":
		return FieldBool, true
	case "operation", "property_type", "condition", "furnished", "kitchen", "surveillance", "status":
		return FieldEnum, true
	}
	if IsKnownFeature(name) {
		return FieldBool, true
	}
	return FieldText, false
}

// AddImage appends a new empty image slot and returns it. The first slot of
// a previously empty list becomes principal.
func (d *Draft) AddImage() Image {
	img := Image{
		ID:          "img_" + uuid.NewString(),
		IsPrincipal: len(d.Images) == 0,
	}
	next := make([]Image, len(d.Images), len(d.Images)+1)
	copy(next, d.Images)
	d.Images = append(next, img)
	return img
}

// RemoveImage removes the slot at index. If the removed slot was principal
// and the list is non-empty afterward, the first remaining image is
// promoted, keeping exactly one principal on any non-empty list. Any
// pending upload for the slot is discarded.
func (d *Draft) RemoveImage(index int) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	removed := d.Images[index]

	next := make([]Image, 0, len(d.Images)-1)
	next = append(next, d.Images[:index]...)
	next = append(next, d.Images[index+1:]...)

	if removed.IsPrincipal && len(next) > 0 {
		next[0].IsPrincipal = true
	}
	d.Images = next
	delete(d.pending, removed.ID)
}

// SetPrincipal marks exactly the slot at index as principal and clears the
// flag everywhere else.
func (d *Draft) SetPrincipal(index int) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	next := make([]Image, len(d.Images))
	copy(next, d.Images)
	for i := range next {
		next[i].IsPrincipal = i == index
	}
	d.Images = next
}

// SetImageURL updates a slot's content source to an external URL and drops
// any pending file upload for that slot.
func (d *Draft) SetImageURL(index int, url string) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	next := make([]Image, len(d.Images))
	copy(next, d.Images)
	next[index].URL = url
	d.Images = next
	delete(d.pending, next[index].ID)
}

// SetImageAltText updates a slot's alternative text.
func (d *Draft) SetImageAltText(index int, alt string) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	next := make([]Image, len(d.Images))
	copy(next, d.Images)
	next[index].AltText = alt
	d.Images = next
}

// AttachFile records a local file for the slot at index. The slot is
// upload-pending until the save orchestration uploads the file and calls
// ResolveUpload with the durable URL.
func (d *Draft) AttachFile(index int, filename string, data []byte) {
	if index < 0 || index >= len(d.Images) {
		return
	}
	if d.pending == nil {
		d.pending = make(map[string]PendingFile)
	}
	d.pending[d.Images[index].ID] = PendingFile{Filename: filename, Data: data}
}

// PendingUploads returns the upload-pending slots keyed by image ID, in
// image-list order. Save must not persist while any remain unresolved.
func (d *Draft) PendingUploads() map[string]PendingFile {
	out := make(map[string]PendingFile, len(d.pending))
	for id, f := range d.pending {
		out[id] = f
	}
	return out
}

// HasPendingUploads reports whether any slot still awaits an upload.
func (d *Draft) HasPendingUploads() bool {
	return len(d.pending) > 0
}

// ResolveUpload substitutes the durable URL obtained for an uploaded file
// into its slot and clears the pending state.
func (d *Draft) ResolveUpload(imageID, url string) {
	for i := range d.Images {
		if d.Images[i].ID == imageID {
			d.SetImageURL(i, url)
			return
		}
	}
}

// ValidationErrors maps field names to human-readable problems.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Validate enforces the minimum rules before a draft may be submitted:
// required descriptive fields, a non-negative price, and at most one
// principal image. It never touches the repository.
func (d *Draft) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "description is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(d.Neighborhood) == "" {
		errs["neighborhood"] = "neighborhood is required"
	}
	if d.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if d.Stratum != nil && *d.Stratum != 0 && (*d.Stratum < 1 || *d.Stratum > 6) {
		errs["stratum"] = "stratum must be between 1 and 6"
	}
	principals := 0
	for _, img := range d.Images {
		if img.IsPrincipal {
			principals++
		}
	}
	if principals > 1 {
		errs["images"] = "only one image may be principal"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToSavedRecord stamps a fresh publication timestamp and returns the draft
// as a Property ready for the repository. It is a pure transform: the
// caller performs any required uploads first and the persistence after.
func (d *Draft) ToSavedRecord() *Property {
	rec := d.Property.Clone()
	rec.PublishedAt = time.Now().UTC()
	return rec
}

func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

func parseCount(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes", "checked":
		return true
	default:
		return false
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
