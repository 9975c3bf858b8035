package query

import "context"

// Option is one selectable entry at a selector level.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FetchOptions loads the options dependent on a parent selection.
type FetchOptions func(ctx context.Context, parentID string) ([]Option, error)

// Selector is the dependent category → subcategory → fabric-type selection
// component. The listing and creation flows share this one implementation
// instead of each carrying its own transition logic. Selecting at any level
// clears every selection and fetched option list below it; selecting the
// empty id is a clear.
type Selector struct {
	fetchSubcategories FetchOptions
	fetchFabricTypes   FetchOptions

	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	FabricTypeID  string   `json:"fabricTypeId"`
	Subcategories []Option `json:"subcategories"`
	FabricTypes   []Option `json:"fabricTypes"`
}

func NewSelector(fetchSubcategories, fetchFabricTypes FetchOptions) *Selector {
	return &Selector{
		fetchSubcategories: fetchSubcategories,
		fetchFabricTypes:   fetchFabricTypes,
	}
}

// SelectCategory sets the category and resets everything downstream, then
// fetches the subcategory options for the new category.
func (s *Selector) SelectCategory(ctx context.Context, categoryID string) error {
	s.CategoryID = categoryID
	s.SubcategoryID = ""
	s.FabricTypeID = ""
	s.Subcategories = nil
	s.FabricTypes = nil

	if categoryID == "" {
		return nil
	}
	options, err := s.fetchSubcategories(ctx, categoryID)
	if err != nil {
		return err
	}
	s.Subcategories = options
	return nil
}

// SelectSubcategory sets the subcategory, resets the fabric-type level, and
// fetches its options.
func (s *Selector) SelectSubcategory(ctx context.Context, subcategoryID string) error {
	s.SubcategoryID = subcategoryID
	s.FabricTypeID = ""
	s.FabricTypes = nil

	if subcategoryID == "" {
		return nil
	}
	options, err := s.fetchFabricTypes(ctx, subcategoryID)
	if err != nil {
		return err
	}
	s.FabricTypes = options
	return nil
}

// SelectFabricType is terminal; nothing cascades below it.
func (s *Selector) SelectFabricType(fabricTypeID string) {
	s.FabricTypeID = fabricTypeID
}

// Replay applies a saved selection from the top down, dropping whatever no
// longer applies after each cascade.
func (s *Selector) Replay(ctx context.Context, categoryID, subcategoryID, fabricTypeID string) error {
	if err := s.SelectCategory(ctx, categoryID); err != nil {
		return err
	}
	if categoryID == "" || subcategoryID == "" {
		return nil
	}
	if err := s.SelectSubcategory(ctx, subcategoryID); err != nil {
		return err
	}
	if fabricTypeID != "" {
		s.SelectFabricType(fabricTypeID)
	}
	return nil
}
