package store

const Schema = `
CREATE TABLE IF NOT EXISTS songs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,

	-- Title is the natural key against the scanner: two scans must not
	-- create duplicate rows for the same title.
	title TEXT NOT NULL UNIQUE,
	artist TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',

	-- Serialized feature vector; NULL until curated metadata exists.
	parameters TEXT,

	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	score_vc REAL NOT NULL DEFAULT 0.5,
	score_ma REAL NOT NULL DEFAULT 0.5,
	score_pr REAL NOT NULL DEFAULT 0.5,
	score_hs REAL NOT NULL DEFAULT 0.5,
	music_type_code TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);

CREATE TABLE IF NOT EXISTS like_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	song_id INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

	FOREIGN KEY (user_id) REFERENCES users(id),
	FOREIGN KEY (song_id) REFERENCES songs(id)
);

CREATE INDEX IF NOT EXISTS idx_like_logs_user ON like_logs(user_id);
CREATE INDEX IF NOT EXISTS idx_like_logs_song ON like_logs(song_id);
`
