package ddlgen

import "github.com/queryforge/rqg/pkg/schema"

// sampleTables returns the curated sample schema from the specification:
// users, categories, addresses, products, orders, order_items, audit_log.
// It is used as a prefix whenever the requested table count is at least
// len(sampleTables()).
func sampleTables() []*schema.Table {
	users := schema.NewTable("users", []schema.Column{
		{Name: "id", DataType: "INTEGER GENERATED BY DEFAULT AS IDENTITY", IsPrimaryKey: true},
		{Name: "email", DataType: "varchar(255)", IsUnique: true},
		{Name: "username", DataType: "varchar(100)", IsUnique: true},
		{Name: "password_hash", DataType: "text"},
		{Name: "created_at", DataType: "timestamp", HasDefault: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "is_active", DataType: "boolean", HasDefault: true, Default: "true"},
		{Name: "metadata", DataType: "jsonb", IsNullable: true},
	})
	users.Indexes = []schema.Index{
		{Name: "users_metadata_idx", Columns: []string{"metadata"}, Method: schema.IndexGIN},
		{Name: "users_active_idx", Columns: []string{"is_active"}, WhereClause: "is_active = true"},
	}

	categories := schema.NewTable("categories", []schema.Column{
		{Name: "id", DataType: "INTEGER GENERATED BY DEFAULT AS IDENTITY", IsPrimaryKey: true},
		{Name: "name", DataType: "varchar(100)", IsUnique: true},
		{Name: "parent_id", DataType: "integer", IsNullable: true, ForeignKey: "categories.id", OnDelete: "SET NULL"},
	})

	addresses := schema.NewTable("addresses", []schema.Column{
		{Name: "id", DataType: "INTEGER GENERATED BY DEFAULT AS IDENTITY", IsPrimaryKey: true},
		{Name: "user_id", DataType: "integer", ForeignKey: "users.id", OnDelete: "CASCADE"},
		{Name: "line1", DataType: "varchar(255)"},
		{Name: "line2", DataType: "varchar(255)", IsNullable: true},
		{Name: "city", DataType: "varchar(100)"},
		{Name: "postal_code", DataType: "varchar(20)"},
		{Name: "country", DataType: "varchar(2)"},
	})

	products := schema.NewTable("products", []schema.Column{
		{Name: "id", DataType: "INTEGER GENERATED BY DEFAULT AS IDENTITY", IsPrimaryKey: true},
		{Name: "sku", DataType: "varchar(64)", IsUnique: true},
		{Name: "name", DataType: "varchar(255)"},
		{Name: "category_id", DataType: "integer", ForeignKey: "categories.id", OnDelete: "RESTRICT"},
		{Name: "price", DataType: "numeric(10,2)", Check: "price >= 0"},
		{Name: "attributes", DataType: "jsonb", IsNullable: true},
	})
	products.Indexes = []schema.Index{
		{Name: "products_attributes_idx", Columns: []string{"attributes"}, Method: schema.IndexGIN},
	}

	orders := schema.NewTable("orders", []schema.Column{
		{Name: "id", DataType: "INTEGER GENERATED BY DEFAULT AS IDENTITY", IsPrimaryKey: true},
		{Name: "user_id", DataType: "integer", ForeignKey: "users.id", OnDelete: "RESTRICT"},
		{Name: "address_id", DataType: "integer", ForeignKey: "addresses.id", OnDelete: "RESTRICT"},
		{Name: "status", DataType: "varchar(32)", HasDefault: true, Default: "'pending'"},
		{Name: "total", DataType: "numeric(12,2)", Check: "total >= 0"},
		{Name: "placed_at", DataType: "timestamp", HasDefault: true, Default: "CURRENT_TIMESTAMP"},
	})
	orders.Indexes = []schema.Index{
		{Name: "orders_pending_idx", Columns: []string{"status"}, WhereClause: "status = 'pending'"},
	}

	orderItems := schema.NewTable("order_items", []schema.Column{
		{Name: "order_id", DataType: "integer", IsPrimaryKey: true, ForeignKey: "orders.id", OnDelete: "CASCADE"},
		{Name: "line_no", DataType: "integer", IsPrimaryKey: true},
		{Name: "product_id", DataType: "integer", ForeignKey: "products.id", OnDelete: "RESTRICT"},
		{Name: "quantity", DataType: "integer", Check: "quantity > 0"},
		{Name: "unit_price", DataType: "numeric(10,2)", Check: "unit_price >= 0"},
	})
	orderItems.Constraints = []schema.TableConstraint{
		{Kind: schema.ConstraintPrimaryKey, Name: "order_items_pkey", Columns: []string{"order_id", "line_no"}},
	}

	auditLog := schema.NewTable("audit_log", []schema.Column{
		{Name: "id", DataType: "bigint", IsNullable: false},
		{Name: "occurred_at", DataType: "timestamp", HasDefault: true, Default: "CURRENT_TIMESTAMP", IsPrimaryKey: true},
		{Name: "actor", DataType: "varchar(100)"},
		{Name: "action", DataType: "varchar(64)"},
		{Name: "payload", DataType: "jsonb", IsNullable: true},
	})
	auditLog.PartitionedBy = "RANGE (occurred_at)"

	return []*schema.Table{users, categories, addresses, products, orders, orderItems, auditLog}
}
