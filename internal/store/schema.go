package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS foods (
    food_id              TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    serving              TEXT,
    quantity             REAL NOT NULL DEFAULT 0,
    exported_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS food_nutrients (
    food_id              TEXT NOT NULL REFERENCES foods(food_id) ON DELETE CASCADE,
    nutrient             TEXT NOT NULL,
    amount               REAL NOT NULL,
    PRIMARY KEY (food_id, nutrient)
);

CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name);
`
