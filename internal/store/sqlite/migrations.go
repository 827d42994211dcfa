package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id           TEXT PRIMARY KEY,
    position     INTEGER NOT NULL,
    account_type TEXT NOT NULL DEFAULT 'Local',
    login        TEXT NOT NULL DEFAULT '',
    password     TEXT,
    label_input  TEXT NOT NULL DEFAULT '',
    updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS account_labels (
    account_id  TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    text        TEXT NOT NULL,
    PRIMARY KEY (account_id, position)
);

CREATE INDEX IF NOT EXISTS idx_accounts_position ON accounts(position);
CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(account_type);
`
