package sqlite

// schema creates the tables backing a spreadsheet. Cells and formats
// reference their sheet and are removed with it.
const schema = `
CREATE TABLE IF NOT EXISTS sheets (
  name     TEXT PRIMARY KEY,
  position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cells (
  sheet_name TEXT NOT NULL,
  row        INTEGER NOT NULL,
  col        INTEGER NOT NULL,
  value      TEXT,
  PRIMARY KEY (sheet_name, row, col),
  FOREIGN KEY (sheet_name) REFERENCES sheets(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS formats (
  sheet_name TEXT NOT NULL,
  start_row  INTEGER NOT NULL,
  start_col  INTEGER NOT NULL,
  num_rows   INTEGER NOT NULL,
  num_cols   INTEGER NOT NULL,
  key        TEXT NOT NULL,
  value      TEXT NOT NULL,
  PRIMARY KEY (sheet_name, start_row, start_col, num_rows, num_cols, key),
  FOREIGN KEY (sheet_name) REFERENCES sheets(name) ON DELETE CASCADE
);
`
