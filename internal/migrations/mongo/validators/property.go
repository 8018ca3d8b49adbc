package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"price",
			"location",
			"property_type",
			"availability",
			"owner_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"location": bson.M{
				"bsonType": "object",
				"required": []string{"address", "city", "state", "zip_code"},
				"properties": bson.M{
					"address":  bson.M{"bsonType": "string"},
					"city":     bson.M{"bsonType": "string"},
					"state":    bson.M{"bsonType": "string"},
					"zip_code": bson.M{"bsonType": "string"},
					"coordinates": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"lat": bson.M{"bsonType": []string{"double", "int"}},
							"lng": bson.M{"bsonType": []string{"double", "int"}},
						},
					},
				},
			},

			"property_type": bson.M{
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

			"bedrooms": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"bathrooms": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
			},

			"area": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
			},

			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"url"},
					"properties": bson.M{
						"url": bson.M{"bsonType": "string"},
						"alt": bson.M{"bsonType": "string"},
					},
				},
			},

			"amenities": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"features": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"availability": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"rented",
					"sold",
					"maintenance",
				},
			},

			"is_featured": bson.M{
				"bsonType": "bool",
			},

			"owner_id": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
