package enums

import "fmt"

type ShopCategory string

const (
	ShopCategoryGrocery     ShopCategory = "grocery"
	ShopCategoryPharmacy    ShopCategory = "pharmacy"
	ShopCategoryFood        ShopCategory = "food"
	ShopCategoryElectronics ShopCategory = "electronics"
)

var validShopCategories = []ShopCategory{
	ShopCategoryGrocery,
	ShopCategoryPharmacy,
	ShopCategoryFood,
	ShopCategoryElectronics,
}

func (c ShopCategory) IsValid() bool {
	for _, candidate := range validShopCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseShopCategory(value string) (ShopCategory, error) {
	for _, candidate := range validShopCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop category %q", value)
}
