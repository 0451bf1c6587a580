package domain

// RuleColumn identifies which product field a collection rule filters on.
type RuleColumn string

const (
	RuleColumnVendor              RuleColumn = "vendor"
	RuleColumnType                RuleColumn = "type"
	RuleColumnMetafieldDefinition RuleColumn = "metafieldDefinition"
)

// RuleRelation is the comparison operator of a rule. The sync only ever
// produces equality rules.
type RuleRelation string

const (
	RuleRelationEquals RuleRelation = "equals"
)

// Attribute slot names tracked by the sync. These are internal names,
// independent of how the store spells the corresponding metafield keys.
const (
	AttrCondition   = "condition"
	AttrVendor      = "vendor"
	AttrProductType = "productType"
	AttrSize        = "size"
	AttrFuelType    = "fuelType"
)

// CanonicalAttributeOrder is the fixed ordering used for titles, handles and
// rule lists. Insertion order of attributes must never leak into output.
var CanonicalAttributeOrder = []string{AttrCondition, AttrSize, AttrVendor, AttrFuelType, AttrProductType}
