package remote

// Operation names. The endpoint (and the fake handler) dispatch on these.
const (
	OpHouses               = "Houses"
	OpCreateHouse          = "CreateHouse"
	OpHouseholds           = "Households"
	OpCreateHousehold      = "CreateHousehold"
	OpCreateKitchen        = "CreateKitchen"
	OpInventoryItems       = "InventoryItems"
	OpInventoryItem        = "InventoryItem"
	OpCreateInventoryItem  = "CreateInventoryItem"
	OpCreateInventoryBatch = "CreateInventoryBatch"
	OpUpdateInventoryItem  = "UpdateInventoryItem"
	OpDeleteInventoryItem  = "DeleteInventoryItem"
	OpProcessVoiceCommand  = "ProcessVoiceCommand"
	OpCategorizeProduct    = "CategorizeProduct"
)

const itemFields = `
    id
    kitchenId
    name
    category
    defaultUnit
    location
    threshold
    tags
    totalQuantity
    status
    nextExpiry
    batches { id quantity unit status purchaseDate expiryDate }`

const (
	queryHouses = `query Houses {
  houses { id name description createdDate }
}`

	mutationCreateHouse = `mutation CreateHouse($input: CreateHouseInput!) {
  createHouse(input: $input) { id name description createdDate }
}`

	queryHouseholds = `query Households {
  households { id name kitchens { id name } }
}`

	mutationCreateHousehold = `mutation CreateHousehold($input: CreateHouseholdInput!) {
  createHousehold(input: $input) { id name }
}`

	mutationCreateKitchen = `mutation CreateKitchen($input: CreateKitchenInput!) {
  createKitchen(input: $input) { id name }
}`

	queryInventoryItems = `query InventoryItems($kitchenId: ID!) {
  inventoryItems(kitchenId: $kitchenId) {` + itemFields + `
  }
}`

	queryInventoryItem = `query InventoryItem($id: ID!) {
  inventoryItem(id: $id) {` + itemFields + `
  }
}`

	mutationCreateInventoryItem = `mutation CreateInventoryItem($input: CreateInventoryItemInput!) {
  createInventoryItem(input: $input) { id kitchenId name category defaultUnit location threshold tags }
}`

	mutationCreateInventoryBatch = `mutation CreateInventoryBatch($input: CreateInventoryBatchInput!) {
  createInventoryBatch(input: $input) { id itemId quantity unit purchaseDate expiryDate status }
}`

	mutationUpdateInventoryItem = `mutation UpdateInventoryItem($id: ID!, $input: UpdateInventoryItemInput!) {
  updateInventoryItem(id: $id, input: $input) {` + itemFields + `
  }
}`

	mutationDeleteInventoryItem = `mutation DeleteInventoryItem($id: ID!) {
  deleteInventoryItem(id: $id)
}`

	mutationProcessVoiceCommand = `mutation ProcessVoiceCommand($transcript: String!) {
  processVoiceCommand(transcript: $transcript) {
    intent
    item { raw_name normalized_name category quantity unit location }
    confidence
    transcript
  }
}`

	queryCategorizeProduct = `query CategorizeProduct($productName: String!) {
  categorizeProduct(productName: $productName) { category confidence reasoning }
}`
)
