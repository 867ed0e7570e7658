package models

// UserProfile is owned by the identity directory; this service reads it and
// only ever writes back the lastSeen heartbeat.
type UserProfile struct {
	UID         string      `dynamodbav:"uid" json:"uid"`
	BuzzID      string      `dynamodbav:"buzzId,omitempty" json:"buzzId,omitempty"`
	Name        string      `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age         int         `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender      string      `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Bio         string      `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL    string      `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Photos      []string    `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Completed   bool        `dynamodbav:"completed" json:"completed"`
	LastSeen    string      `dynamodbav:"lastSeen,omitempty" json:"lastSeen,omitempty"`
	Preferences *Preference `dynamodbav:"preferences,omitempty" json:"preferences,omitempty"`
}

// Preference is stored on behalf of the presentation layer; this core never
// interprets it.
type Preference struct {
	MinAge          int    `dynamodbav:"minAge,omitempty" json:"minAge,omitempty"`
	MaxAge          int    `dynamodbav:"maxAge,omitempty" json:"maxAge,omitempty"`
	PreferredGender string `dynamodbav:"preferredGender,omitempty" json:"preferredGender,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

// BuzzIDIndex is the GSI used for exact buzzId lookups
const BuzzIDIndex = "buzzId-index"
