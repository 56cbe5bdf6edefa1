package models

import "strconv"

// Contract constants shared by the store, the provider and its callers.
const (
	// ContentAuthority namespaces every address and content type of the app.
	ContentAuthority = "com.example.android.inventoryapp"
	// ContentScheme is the scheme of fully qualified addresses.
	ContentScheme = "content"
	// PathProducts is the collection address of all products.
	PathProducts = "products"

	// TableName is the physical table backing the products collection.
	TableName = "products"

	ColumnID            = "_id"
	ColumnPicture       = "picture"
	ColumnName          = "name"
	ColumnPrice         = "price"
	ColumnQuantity      = "quantity"
	ColumnSupplierName  = "supplierName"
	ColumnSupplierEmail = "supplierEmail"
)

const (
	cursorDirBaseType  = "vnd.android.cursor.dir"
	cursorItemBaseType = "vnd.android.cursor.item"
)

// Content types returned for collection and item addresses.
const (
	ContentListType = cursorDirBaseType + "/" + ContentAuthority + "/" + PathProducts
	ContentItemType = cursorItemBaseType + "/" + ContentAuthority + "/" + PathProducts
)

// Columns lists every recognized column key in table order.
var Columns = []string{
	ColumnID,
	ColumnPicture,
	ColumnName,
	ColumnPrice,
	ColumnQuantity,
	ColumnSupplierName,
	ColumnSupplierEmail,
}

// IsColumn reports whether key is one of the recognized column keys.
func IsColumn(key string) bool {
	for _, c := range Columns {
		if c == key {
			return true
		}
	}
	return false
}

// ContentURI is the fully qualified collection address.
func ContentURI() string {
	return ContentScheme + "://" + ContentAuthority + "/" + PathProducts
}

// ItemAddress returns the address of the product with the given identifier.
func ItemAddress(id int64) string {
	return PathProducts + "/" + strconv.FormatInt(id, 10)
}
