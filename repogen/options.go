package repogen

const defaultSchemaName = "public"

type repoOptions struct {
	schemaName    string
	conflictCodes map[string]string
	relations     []string
}

// Option configures a PgRepo.
type Option func(*repoOptions)

// WithSchemaName sets the PostgreSQL schema the table lives in.
func WithSchemaName(name string) Option {
	return func(o *repoOptions) {
		o.schemaName = name
	}
}

// WithConflictCodes maps constraint names to error codes, e.g. "tags_name_key" -> "TAG_ALREADY_EXISTS".
func WithConflictCodes(codes map[string]string) Option {
	return func(o *repoOptions) {
		o.conflictCodes = codes
	}
}

// WithRelations eager loads the given bun relations on GetByID, GetAll and FindByFilter.
func WithRelations(relations ...string) Option {
	return func(o *repoOptions) {
		o.relations = append(o.relations, relations...)
	}
}
