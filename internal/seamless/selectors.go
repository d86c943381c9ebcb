package seamless

// Selectors for the corporate ordering flow. The site has no stable ids on
// most of the interesting elements, so list lookups go through small JS
// snippets that return (text, index) pairs and clicks address the nth match.
const (
	selLoginEmail    = `input[name="username"]`
	selLoginPassword = `input[name="password"]`
	selLoginSubmit   = `button[type="submit"]`
	selHomeReady     = `#OrderingForm`

	selTimeSelect   = `select[name="deliveryTime"]`
	selTimeContinue = `button[name="findFood"]`

	selRestaurantLink = `a[name="vendorLocation"]`
	selMenuReady      = `#MenuPage`

	selItemRow       = `a[name="product"]`
	selItemDialog    = `#productDetails`
	selOptionLabel   = `#productDetails label.productOption`
	selOptionInput   = `#productDetails label.productOption input`
	selAddToCart     = `#productDetails button[name="addToOrder"]`
	selCartSubtotal  = `#cart .subtotal .amount`
	selMinimumBanner = `#cart .deliveryMinimum .remaining`

	selSplitNameInput = `input[name="allocationName"]`
	selSplitAddButton = `button[name="addAllocation"]`
	selOwnShareInput  = `#allocations tr.accountRow input[name="amount"]`
	selAllocationRow  = `#allocations tr.personRow`

	selPhoneInput        = `input[name="phoneNumber"]`
	selInstructionsInput = `textarea[name="deliveryInstructions"]`

	selPlaceOrder   = `button[name="placeOrder"]`
	selConfirmation = `#OrderConfirmation`
)

const jsRestaurantList = `
(() => [...document.querySelectorAll('a[name="vendorLocation"]')]
	.map((el, i) => ({text: el.innerText.trim(), handle: String(i)})))()`

const jsItemList = `
(() => [...document.querySelectorAll('a[name="product"]')]
	.map((el, i) => ({text: el.innerText.trim(), handle: String(i)})))()`

const jsOptionList = `
(() => [...document.querySelectorAll('#productDetails label.productOption')]
	.map((el, i) => ({text: el.innerText.trim(), handle: String(i)})))()`

const jsAllocationRows = `
(() => [...document.querySelectorAll('#allocations tr.personRow')]
	.map(row => ({
		text: row.querySelector('.name').innerText.trim(),
		handle: row.querySelector('.amount').innerText.trim(),
	})))()`

const jsMinimumShortfall = `
(() => {
	const el = document.querySelector('#cart .deliveryMinimum .remaining');
	return el ? el.innerText.trim() : '$0.00';
})()`
