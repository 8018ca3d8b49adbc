package validators

import "go.mongodb.org/mongo-driver/bson"

var NewsletterSubscriptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"is_active",
			"subscribed_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"preferences": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"property_types": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
							"enum": []string{
								"apartment",
								"house",
								"condo",
								"townhouse",
								"studio",
								"loft",
							},
						},
					},
					"locations": bson.M{
						"bsonType": "array",
						"items":    bson.M{"bsonType": "string"},
					},
					"price_range": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"min": bson.M{"bsonType": []string{"double", "int", "long"}},
							"max": bson.M{"bsonType": []string{"double", "int", "long"}},
						},
					},
				},
			},

			"subscribed_at": bson.M{
				"bsonType": "date",
			},

			"unsubscribed_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
