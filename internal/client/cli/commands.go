package cli

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register", summary: "create an account", run: a.Register},
		{name: "login", usage: "login [email]", summary: "sign in with email and password", run: a.Login},
		{name: "oauth", usage: "oauth <google|facebook>", summary: "sign in through a browser", run: a.OAuth},
		{name: "verify", usage: "verify <email> <token>", summary: "activate an account", run: a.Verify},
		{name: "resend", usage: "resend <email>", summary: "send the verification email again", run: a.Resend},

		{name: "products", usage: "products [page= limit= q= cat= sort=]", summary: "browse products", run: a.Products},
		{name: "product", usage: "product <id>", summary: "show product details", run: a.Product},
		{name: "categories", usage: "categories [page= limit= q=]", summary: "list categories", run: a.Categories},
		{name: "category", usage: "category <id>", summary: "show a category", run: a.Category},

		{name: "cart", usage: "cart", summary: "show the cart", run: a.Cart},
		{name: "add", usage: "add <productId> [qty]", summary: "add a product to the cart", run: a.AddToCart},
		{name: "qty", usage: "qty <productId> <qty>", summary: "change a cart quantity", run: a.SetQuantity},
		{name: "remove", usage: "remove <productId>", summary: "remove a product from the cart", run: a.RemoveFromCart},
		{name: "clearcart", usage: "clearcart", summary: "empty the cart", run: a.ClearCart},
		{name: "wishlist", usage: "wishlist", summary: "show the wishlist", run: a.Wishlist},
		{name: "wish", usage: "wish <productId>", summary: "add a product to the wishlist", run: a.Wish},
		{name: "unwish", usage: "unwish <productId>", summary: "remove a product from the wishlist", run: a.Unwish},
		{name: "movetocart", usage: "movetocart <productId>", summary: "move a wishlist item to the cart", run: a.MoveToCart},
		{name: "clearwishlist", usage: "clearwishlist", summary: "empty the wishlist", run: a.ClearWishlist},
		{name: "vouchers", usage: "vouchers [limit]", summary: "list active vouchers", run: a.Vouchers},

		{name: "whoami", usage: "whoami", summary: "show the signed-in account", auth: true, run: a.WhoAmI},
		{name: "session", usage: "session", summary: "show the session state and token expiry", auth: true, run: a.Session},
		{name: "profile", usage: "profile", summary: "edit the profile", auth: true, run: a.EditProfile},
		{name: "avatar", usage: "avatar <file>", summary: "upload a new avatar", auth: true, run: a.Avatar},
		{name: "passwd", usage: "passwd", summary: "change the password", auth: true, run: a.ChangePassword},
		{name: "sessions", usage: "sessions", summary: "list signed-in devices", auth: true, run: a.Sessions},
		{name: "revoke", usage: "revoke <sessionId>", summary: "sign a device out", auth: true, run: a.Revoke},

		{name: "voucher", usage: "voucher <code>", summary: "apply a voucher to the cart", auth: true, run: a.ApplyVoucher},
		{name: "summary", usage: "summary", summary: "show the checkout summary", auth: true, run: a.Summary},
		{name: "checkout", usage: "checkout [address=<id>] [pay=<method>]", summary: "place an order for the cart", auth: true, run: a.Checkout},
		{name: "orders", usage: "orders [page= size= status=]", summary: "list my orders", auth: true, run: a.Orders},
		{name: "order", usage: "order <code>", summary: "show an order", auth: true, run: a.Order},
		{name: "cancel", usage: "cancel <code>", summary: "cancel an order", auth: true, run: a.CancelOrder},

		{name: "addresses", usage: "addresses", summary: "list shipping addresses", auth: true, run: a.Addresses},
		{name: "addaddress", usage: "addaddress", summary: "add a shipping address", auth: true, run: a.AddAddress},
		{name: "editaddress", usage: "editaddress <id>", summary: "edit a shipping address", auth: true, run: a.EditAddress},
		{name: "deladdress", usage: "deladdress <id>", summary: "delete a shipping address", auth: true, run: a.DeleteAddress},
		{name: "defaultaddress", usage: "defaultaddress <id>", summary: "make an address the default", auth: true, run: a.DefaultAddress},

		{name: "logout", usage: "logout", summary: "sign out", auth: true, run: a.Logout},
	}
}

// oneID parses the single id argument of a command.
func oneID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError(usage)
	}
	return parseID(args[0])
}
