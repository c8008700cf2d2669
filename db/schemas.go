package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	title VARCHAR(255) NOT NULL,
	venue VARCHAR(255) NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	created_by UUID NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
	ticket_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	event_id UUID NOT NULL REFERENCES events (event_id),
	name VARCHAR(255) NOT NULL,
	price_amount NUMERIC(10, 2) NOT NULL CHECK (price_amount >= 0),
	price_currency CHAR(3) NOT NULL,
	quantity INT NOT NULL CHECK (quantity >= 1)
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	user_id UUID NOT NULL,
	ticket_id UUID NOT NULL REFERENCES tickets (ticket_id),
	quantity INT NOT NULL CHECK (quantity >= 1),
	status VARCHAR(16) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- Backstop for the duplicate-active-booking rule: the admission transaction
-- checks first, the index closes any race that slips past it.
CREATE UNIQUE INDEX IF NOT EXISTS bookings_one_active_per_user_ticket
	ON bookings (user_id, ticket_id)
	WHERE status IN ('pending', 'confirmed');

CREATE TABLE IF NOT EXISTS payments (
	payment_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	booking_id UUID NOT NULL UNIQUE REFERENCES bookings (booking_id),
	amount NUMERIC(10, 2) NOT NULL,
	currency CHAR(3) NOT NULL,
	method VARCHAR(32) NOT NULL,
	status VARCHAR(16) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS read_model_ops_bookings (
	booking_id UUID PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS event_log (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMPTZ NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
