package sqlite

// schema mirrors the Postgres migrations. SQLite has no native sequences, so
// reference numbers come from the ref_counters table and the audit sequence
// rides on the rowid autoincrement.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id         TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL UNIQUE,
	role            TEXT NOT NULL,
	password_hash   TEXT NOT NULL,
	created_at      DATETIME NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at DATETIME NOT NULL,
	last_updated_by TEXT NOT NULL,
	deleted_at      DATETIME
);

CREATE TABLE IF NOT EXISTS applications (
	application_id        TEXT PRIMARY KEY,
	reference_number      TEXT NOT NULL UNIQUE,
	employee_id           TEXT NOT NULL,
	employee_name         TEXT NOT NULL,
	patient_name          TEXT NOT NULL,
	patient_relation      TEXT NOT NULL,
	treatment_type        TEXT NOT NULL,
	hospital_name         TEXT NOT NULL,
	treatment_from        DATETIME NOT NULL,
	treatment_to          DATETIME NOT NULL,
	status                TEXT NOT NULL,
	total_amount_claimed  TEXT NOT NULL,
	total_amount_approved TEXT NOT NULL,
	submitted_at          DATETIME NOT NULL,
	reviewed_by           TEXT,
	reviewed_at           DATETIME,
	reviewer_comments     TEXT,
	created_at            DATETIME NOT NULL,
	created_by            TEXT NOT NULL,
	last_updated_at       DATETIME NOT NULL,
	last_updated_by       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_employee ON applications(employee_id);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);

CREATE TABLE IF NOT EXISTS expense_items (
	expense_id      TEXT PRIMARY KEY,
	application_id  TEXT NOT NULL REFERENCES applications(application_id),
	bill_number     TEXT NOT NULL,
	bill_date       DATETIME NOT NULL,
	description     TEXT NOT NULL,
	amount_claimed  TEXT NOT NULL,
	amount_approved TEXT NOT NULL,
	created_at      DATETIME NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at DATETIME NOT NULL,
	last_updated_by TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expense_items_application ON expense_items(application_id);

CREATE TABLE IF NOT EXISTS application_documents (
	document_id     TEXT PRIMARY KEY,
	application_id  TEXT NOT NULL REFERENCES applications(application_id),
	document_type   TEXT NOT NULL,
	file_name       TEXT NOT NULL,
	content_type    TEXT NOT NULL,
	size_bytes      INTEGER NOT NULL,
	storage_key     TEXT NOT NULL,
	created_at      DATETIME NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at DATETIME NOT NULL,
	last_updated_by TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_application ON application_documents(application_id);

CREATE TABLE IF NOT EXISTS eligibility_checks (
	check_id              TEXT PRIMARY KEY,
	application_id        TEXT NOT NULL,
	category_proof_valid  INTEGER NOT NULL,
	employee_id_verified  INTEGER NOT NULL,
	medical_card_valid    INTEGER NOT NULL,
	relationship_verified INTEGER NOT NULL,
	within_claim_limit    INTEGER NOT NULL,
	treatment_covered     INTEGER NOT NULL,
	prior_permission      TEXT NOT NULL,
	eligibility_status    TEXT NOT NULL,
	reasons               TEXT NOT NULL,
	conditions            TEXT NOT NULL,
	created_at            DATETIME NOT NULL,
	created_by            TEXT NOT NULL,
	last_updated_at       DATETIME NOT NULL,
	last_updated_by       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_eligibility_application ON eligibility_checks(application_id);

CREATE TABLE IF NOT EXISTS document_reviews (
	review_id           TEXT PRIMARY KEY,
	application_id      TEXT NOT NULL,
	document_id         TEXT NOT NULL,
	is_verified         INTEGER NOT NULL,
	is_complete         INTEGER NOT NULL,
	is_legible          INTEGER NOT NULL,
	remarks             TEXT NOT NULL,
	verification_status TEXT NOT NULL,
	created_at          DATETIME NOT NULL,
	created_by          TEXT NOT NULL,
	last_updated_at     DATETIME NOT NULL,
	last_updated_by     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_document_reviews_application ON document_reviews(application_id);

CREATE TABLE IF NOT EXISTS comments (
	comment_id      TEXT PRIMARY KEY,
	application_id  TEXT NOT NULL,
	author_id       TEXT NOT NULL,
	author_role     TEXT NOT NULL,
	comment_text    TEXT NOT NULL,
	comment_type    TEXT NOT NULL,
	is_internal     INTEGER NOT NULL,
	is_resolved     INTEGER NOT NULL,
	created_at      DATETIME NOT NULL,
	created_by      TEXT NOT NULL,
	last_updated_at DATETIME NOT NULL,
	last_updated_by TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_application ON comments(application_id);

CREATE TABLE IF NOT EXISTS reviews (
	review_id            TEXT PRIMARY KEY,
	application_id       TEXT NOT NULL,
	stage                TEXT NOT NULL,
	decision             TEXT NOT NULL,
	eligibility_verified INTEGER NOT NULL,
	documents_verified   INTEGER NOT NULL,
	medical_validity     INTEGER NOT NULL,
	expenses_verified    INTEGER NOT NULL,
	remarks              TEXT NOT NULL,
	created_at           DATETIME NOT NULL,
	created_by           TEXT NOT NULL,
	last_updated_at      DATETIME NOT NULL,
	last_updated_by      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_application ON reviews(application_id);

CREATE TABLE IF NOT EXISTS audit_log (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_id    TEXT NOT NULL UNIQUE,
	entity_type TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	action      TEXT NOT NULL,
	actor_id    TEXT NOT NULL,
	changes     TEXT NOT NULL,
	client_ip   TEXT,
	user_agent  TEXT,
	recorded_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_recorded ON audit_log(recorded_at, seq);

CREATE TABLE IF NOT EXISTS ref_counters (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`
