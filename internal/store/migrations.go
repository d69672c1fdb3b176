package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	price REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	author     TEXT NOT NULL DEFAULT '',
	comment    TEXT NOT NULL,
	rate       REAL NOT NULL DEFAULT 0 CHECK(rate BETWEEN 0 AND 5),
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS basket_items (
	id         TEXT PRIMARY KEY,
	product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	count      INTEGER NOT NULL DEFAULT 1 CHECK(count > 0),
	UNIQUE(product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	shipping_id    INTEGER NOT NULL,
	shipping_title TEXT NOT NULL,
	total          REAL NOT NULL,
	created_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_product_id ON comments(product_id);
CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
INSERT OR IGNORE INTO products (id, title, price) VALUES
	(1, 'Nordic Lounge Chair', 120),
	(2, 'Walnut Side Table', 80),
	(3, 'Linen Floor Lamp', 45);

INSERT OR IGNORE INTO comments (id, product_id, author, comment, rate, created_at) VALUES
	('seed-c1', 1, 'Mina', 'Comfortable and sturdy.', 5, '2024-01-05 10:00:00'),
	('seed-c2', 1, 'Omar', 'Arrived a little scratched.', 3, '2024-01-07 18:30:00'),
	('seed-c3', 2, 'Lea', 'Exactly as pictured.', 4, '2024-02-11 09:15:00');

INSERT OR IGNORE INTO basket_items (id, product_id, count) VALUES
	('seed-b1', 1, 1),
	('seed-b2', 3, 2);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
