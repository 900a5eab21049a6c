package catalog

import (
	"context"

	"gorm.io/gorm"

	catalogEntity "catalog.GO/model/entity/catalog"
)

// CatalogRepository reads the product / option / rule graph. It never writes
// inventory counters.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) FindProduct(ctx context.Context, id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) FindProductBySKU(ctx context.Context, sku string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) FindVariation(ctx context.Context, id uint) (*catalogEntity.ProductVariation, error) {
	var v catalogEntity.ProductVariation
	if err := r.db.WithContext(ctx).Preload("AttributeValues").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *CatalogRepository) FindVariationBySKU(ctx context.Context, sku string) (*catalogEntity.ProductVariation, error) {
	var v catalogEntity.ProductVariation
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// SKUExists checks both products and variations.
func (r *CatalogRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&catalogEntity.Product{}).Where("sku = ?", sku).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&catalogEntity.ProductVariation{}).Where("sku = ?", sku).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindOptions loads the product's options ordered by position, each with its
// attribute and values (values ordered by position, with their attribute option).
func (r *CatalogRepository) FindOptions(ctx context.Context, productID uint) ([]catalogEntity.ConfigurableOption, error) {
	var opts []catalogEntity.ConfigurableOption
	err := r.db.WithContext(ctx).
		Preload("Attribute").
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Values.AttributeOption").
		Where("product_id = ?", productID).
		Order("position ASC, id ASC").
		Find(&opts).Error
	return opts, err
}

// FindRulesFor returns the rules fired by selecting value: rules bound to the
// value plus option-level rules without a trigger value, by sort order.
func (r *CatalogRepository) FindRulesFor(ctx context.Context, value catalogEntity.ConfigurableOptionValue) ([]catalogEntity.ConfigurationRule, error) {
	var all []catalogEntity.ConfigurationRule
	err := r.db.WithContext(ctx).
		Where("option_id = ?", value.OptionID).
		Order("sort_order ASC, id ASC").
		Find(&all).Error
	if err != nil {
		return nil, err
	}
	rules := all[:0]
	for _, rule := range all {
		if rule.TriggeredBy(value.ID) {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// FindVariationsFor returns the product's variations with their attribute values.
func (r *CatalogRepository) FindVariationsFor(ctx context.Context, productID uint) ([]catalogEntity.ProductVariation, error) {
	var vs []catalogEntity.ProductVariation
	err := r.db.WithContext(ctx).
		Preload("AttributeValues").
		Where("parent_id = ?", productID).
		Order("id ASC").
		Find(&vs).Error
	return vs, err
}

// FindVariationIDsByAttributeOptions returns ids of the product's variations
// whose attribute values include every one of optionIDs. Supersets match too;
// callers needing an exact match must compare the full sets.
func (r *CatalogRepository) FindVariationIDsByAttributeOptions(ctx context.Context, productID uint, optionIDs []uint) ([]uint, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("product_variation_attribute_value AS pvav").
		Joins("JOIN product_variation pv ON pv.id = pvav.variation_id").
		Where("pv.parent_id = ? AND pvav.attribute_option_id IN ?", productID, optionIDs).
		Group("pvav.variation_id").
		Having("COUNT(DISTINCT pvav.attribute_option_id) = ?", len(optionIDs)).
		Order("pvav.variation_id").
		Pluck("pvav.variation_id", &ids).Error
	return ids, err
}

// FindVariationsByIDs loads variations with attribute values, id order.
func (r *CatalogRepository) FindVariationsByIDs(ctx context.Context, ids []uint) ([]catalogEntity.ProductVariation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vs []catalogEntity.ProductVariation
	err := r.db.WithContext(ctx).
		Preload("AttributeValues").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&vs).Error
	return vs, err
}
