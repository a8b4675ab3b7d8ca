package store

const (
	// Per-catalog name resolution. One fixed statement per catalog so no
	// table name is ever built from input.
	qResolveSize    = `SELECT id FROM sizes WHERE name = $1;`
	qResolveSauce   = `SELECT id FROM sauces WHERE name = $1;`
	qResolveTopping = `SELECT id FROM toppings WHERE name = $1;`

	// Full catalog listings, used by the validation gate and the catalog
	// endpoints. Always read fresh.
	qListSizes    = `SELECT name FROM sizes ORDER BY id;`
	qListSauces   = `SELECT name FROM sauces ORDER BY id;`
	qListToppings = `SELECT name FROM toppings ORDER BY id;`

	qOrderExists = `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1);`

	// Insert into 'orders', returning the generated id for the topping rows.
	qInsertOrder = `
		INSERT INTO orders (size_id, sauce_id)
		VALUES ($1, $2)
		RETURNING id;
	`

	qInsertOrderTopping = `
		INSERT INTO order_toppings (order_id, topping_id)
		VALUES ($1, $2);
	`

	qUpdateOrderSize  = `UPDATE orders SET size_id = $1 WHERE id = $2;`
	qUpdateOrderSauce = `UPDATE orders SET sauce_id = $1 WHERE id = $2;`

	// Toppings are replaced wholesale: delete everything, reinsert.
	qDeleteOrderToppings = `DELETE FROM order_toppings WHERE order_id = $1;`

	// Topping rows go with it via ON DELETE CASCADE.
	qDeleteOrder = `DELETE FROM orders WHERE id = $1;`

	// Retrieves an order as a JSON object built in the database: one
	// round trip, topping names aggregated into an array. Orders without
	// toppings still come back (LEFT JOIN + empty array).
	qOrderJSON = `
		SELECT
			json_build_object(
				'order_id', o.id,
				'size', s.name,
				'sauce', sa.name,
				'toppings', COALESCE(t.names, '[]'::json)
			)
		FROM
			orders o
		JOIN
			sizes s ON o.size_id = s.id
		JOIN
			sauces sa ON o.sauce_id = sa.id
		LEFT JOIN
			(
				SELECT
					ot.order_id,
					json_agg(tp.name) AS names
				FROM
					order_toppings ot
				JOIN
					toppings tp ON ot.topping_id = tp.id
				GROUP BY
					ot.order_id
			) t ON o.id = t.order_id
		WHERE
			o.id = $1;
	`
)
