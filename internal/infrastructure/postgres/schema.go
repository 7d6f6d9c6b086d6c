package postgres

// migration versión del esquema aplicada en orden ascendente.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations se aplican cada una en su propia transacción.
var migrations = []migration{
	{Version: 1, Name: "esquema inicial", SQL: schemaV1},
	{Version: 2, Name: "índices de listados", SQL: schemaV2},
}

const schemaV1 = `
CREATE TYPE permuta_status AS ENUM ('pending', 'analyzing', 'approved', 'completed', 'rejected', 'cancelled');
CREATE TYPE account_type AS ENUM ('free', 'pro_i', 'pro_ii', 'premium');

CREATE TABLE users (
    id                 VARCHAR(255) PRIMARY KEY,
    username           VARCHAR(255) UNIQUE,
    email              VARCHAR(255) UNIQUE,
    first_name         VARCHAR(255),
    last_name          VARCHAR(255),
    profile_image_url  TEXT,
    role               VARCHAR(50)  NOT NULL DEFAULT 'user',
    account_type       account_type NOT NULL DEFAULT 'free',
    account_expires_at TIMESTAMPTZ,
    created_at         TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE sectors (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(200) NOT NULL,
    description TEXT,
    address     VARCHAR(255),
    city        VARCHAR(120),
    zip_code    VARCHAR(20),
    phone       VARCHAR(40),
    email       VARCHAR(255),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE permutas (
    id             BIGSERIAL PRIMARY KEY,
    user_id        VARCHAR(255)   NOT NULL REFERENCES users(id),
    from_sector_id BIGINT         NOT NULL REFERENCES sectors(id),
    to_sector_id   BIGINT         NOT NULL REFERENCES sectors(id),
    status         permuta_status NOT NULL DEFAULT 'pending',
    description    TEXT,
    created_at     TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
    completed_at   TIMESTAMPTZ
);

CREATE TABLE messages (
    id          BIGSERIAL PRIMARY KEY,
    sender_id   VARCHAR(255) NOT NULL REFERENCES users(id),
    receiver_id VARCHAR(255) REFERENCES users(id),
    content     TEXT         NOT NULL,
    is_read     BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

-- El historial sobrevive al borrado de usuarios, permutas y sectores.
CREATE TABLE activities (
    id          BIGSERIAL PRIMARY KEY,
    user_id     VARCHAR(255) REFERENCES users(id) ON DELETE SET NULL,
    permuta_id  BIGINT       REFERENCES permutas(id) ON DELETE SET NULL,
    sector_id   BIGINT       REFERENCES sectors(id) ON DELETE SET NULL,
    type        VARCHAR(50)  NOT NULL,
    description TEXT         NOT NULL,
    created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE admin_credentials (
    username      VARCHAR(100) PRIMARY KEY,
    password_hash TEXT        NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const schemaV2 = `
CREATE INDEX idx_permutas_created ON permutas (created_at DESC);
CREATE INDEX idx_permutas_status ON permutas (status, created_at DESC);
CREATE INDEX idx_permutas_user ON permutas (user_id, created_at DESC);
CREATE INDEX idx_messages_sender ON messages (sender_id, created_at DESC);
CREATE INDEX idx_messages_receiver ON messages (receiver_id, is_read, created_at DESC);
CREATE INDEX idx_activities_created ON activities (created_at DESC);
CREATE INDEX idx_users_account_expiry ON users (account_expires_at) WHERE account_type <> 'free';
`
