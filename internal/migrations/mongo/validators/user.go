package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"username",
			"email",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"username": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"pattern":   `^.+@.+\..+$`,
				"maxLength": 320,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"guest",
					"owner",
				},
			},

			"recent_searched_cities": bson.M{
				"bsonType": "array",
				"maxItems": 3,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 100,
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
