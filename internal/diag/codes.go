package diag

// Code identifies a class of compile problem. Codes are stable: tooling that
// consumes compile results may match on them.
type Code string

const (
	// --- Structural / parsing ---

	// CodeMissingColon indicates a block with no kind keyword.
	CodeMissingColon Code = "MISSING_COLON"
	// CodeInvalidSyntax indicates a block that is structurally out of place.
	CodeInvalidSyntax Code = "INVALID_SYNTAX"
	// CodeInvalidVersion indicates a version literal other than the supported one.
	CodeInvalidVersion Code = "INVALID_VERSION"
	// CodeInvalidProfileJSON indicates a malformed profile payload.
	CodeInvalidProfileJSON Code = "INVALID_PROFILE_JSON"
	// CodeInvalidBPodJSON indicates a malformed b-pod payload.
	CodeInvalidBPodJSON Code = "INVALID_BPOD_JSON"
	// CodeMissingBPodName indicates a b-pod block without a quoted name.
	CodeMissingBPodName Code = "MISSING_BPOD_NAME"
	// CodeDuplicateBPodName indicates two services sharing one name.
	CodeDuplicateBPodName Code = "DUPLICATE_BPOD_NAME"
	// CodeInvalidFilesJSON indicates a malformed files block.
	CodeInvalidFilesJSON Code = "INVALID_FILES_JSON"

	// --- File handling ---

	// CodeFileNotFound indicates a referenced file does not exist.
	CodeFileNotFound Code = "FILE_NOT_FOUND"
	// CodeFileTooLarge indicates a file above the configured size ceiling.
	CodeFileTooLarge Code = "FILE_TOO_LARGE"
	// CodeTooManyFiles indicates the include list exceeds the file count ceiling.
	CodeTooManyFiles Code = "TOO_MANY_FILES"
	// CodeInvalidFilePath indicates an unsafe or non-reserved include path.
	CodeInvalidFilePath Code = "INVALID_FILE_PATH"
	// CodeFileReadError indicates a file that exists but could not be read.
	CodeFileReadError Code = "FILE_READ_ERROR"
	// CodeDuplicateFile indicates a file included more than once.
	CodeDuplicateFile Code = "DUPLICATE_FILE"

	// --- Profile validation ---

	// CodeMissingProfileName indicates a profile without a name.
	CodeMissingProfileName Code = "MISSING_PROFILE_NAME"
	// CodeInvalidProfileField indicates a profile field of the wrong shape.
	CodeInvalidProfileField Code = "INVALID_PROFILE_FIELD"
	// CodeInvalidLogoURL indicates a logo that is not an HTTPS URL.
	CodeInvalidLogoURL Code = "INVALID_LOGO_URL"
	// CodeInvalidWebsiteURL indicates a website that is not an HTTPS URL.
	CodeInvalidWebsiteURL Code = "INVALID_WEBSITE_URL"
	// CodeDescriptionTooLong indicates a description above the length cap.
	CodeDescriptionTooLong Code = "DESCRIPTION_TOO_LONG"
	// CodeMissingLogo advises that the default logo will be used.
	CodeMissingLogo Code = "MISSING_LOGO"
	// CodeMissingDescription advises that a description is recommended.
	CodeMissingDescription Code = "MISSING_DESCRIPTION"
	// CodeMissingWebsite advises that a website link is recommended.
	CodeMissingWebsite Code = "MISSING_WEBSITE"
	// CodeUnknownField advises about an unrecognized payload field.
	CodeUnknownField Code = "UNKNOWN_FIELD"

	// --- Service validation ---

	// CodeMissingBPodAccepts indicates a service with no accepted extensions.
	CodeMissingBPodAccepts Code = "MISSING_BPOD_ACCEPTS"
	// CodeInvalidFileExtension indicates a malformed accepted extension.
	CodeInvalidFileExtension Code = "INVALID_FILE_EXTENSION"
	// CodeInvalidInputType indicates an input type outside the known set.
	CodeInvalidInputType Code = "INVALID_INPUT_TYPE"
	// CodeMissingInputOptions indicates a radio/dropdown input without options.
	CodeMissingInputOptions Code = "MISSING_INPUT_OPTIONS"
	// CodeInvalidValidationRange indicates numeric bounds with min above max.
	CodeInvalidValidationRange Code = "INVALID_VALIDATION_RANGE"
	// CodeMissingSubmitLabel indicates a submit block without a label.
	CodeMissingSubmitLabel Code = "MISSING_SUBMIT_LABEL"
	// CodeInvalidAPIURL indicates an api url that is not HTTPS.
	CodeInvalidAPIURL Code = "INVALID_API_URL"
	// CodeInvalidHTTPMethod indicates an api method other than GET or POST.
	CodeInvalidHTTPMethod Code = "INVALID_HTTP_METHOD"
	// CodeInvalidResponseType indicates a responseType other than file or json.
	CodeInvalidResponseType Code = "INVALID_RESPONSE_TYPE"
	// CodeMissingFileParams indicates an api block with no file parameters.
	CodeMissingFileParams Code = "MISSING_FILE_PARAMS"
	// CodeMissingWebhookURL indicates a body template without {webhook_url}.
	CodeMissingWebhookURL Code = "MISSING_WEBHOOK_URL"
	// CodeMissingFileParamReference indicates a body template that never
	// references one of the declared file parameters.
	CodeMissingFileParamReference Code = "MISSING_FILE_PARAM_REFERENCE"
	// CodeBodyTemplateOnGet indicates a body template on a GET service.
	CodeBodyTemplateOnGet Code = "BODY_TEMPLATE_ON_GET"
	// CodeInvalidRetries indicates a retry count outside 0..5.
	CodeInvalidRetries Code = "INVALID_RETRIES"
	// CodeInvalidTimeout indicates a non-positive timeout.
	CodeInvalidTimeout Code = "INVALID_TIMEOUT"
	// CodeInvalidServiceField indicates a service field of the wrong shape.
	CodeInvalidServiceField Code = "INVALID_SERVICE_FIELD"
	// CodeMissingServiceDescription advises that a description is recommended.
	CodeMissingServiceDescription Code = "MISSING_SERVICE_DESCRIPTION"
	// CodeMissingTags advises that tags improve discoverability.
	CodeMissingTags Code = "MISSING_TAGS"
	// CodeMissingHeaders advises that api headers are usually needed.
	CodeMissingHeaders Code = "MISSING_HEADERS"
	// CodeMissingTimeout advises that an explicit api timeout is recommended.
	CodeMissingTimeout Code = "MISSING_TIMEOUT"

	// --- System ---

	// CodeInternalError indicates an unexpected failure inside the compiler.
	CodeInternalError Code = "INTERNAL_ERROR"
	// CodeProbeFailed indicates an external URL that did not respond.
	CodeProbeFailed Code = "PROBE_FAILED"
)

// Messages is the human-readable triple attached to a code.
type Messages struct {
	Summary     string
	Explanation string
	Fix         string
}

var catalog = map[Code]Messages{
	CodeMissingColon: {
		Summary:     "Block has no keyword",
		Explanation: "Every block must start with a keyword followed by a colon, such as 'version:' or 'b-pod:'.",
		Fix:         "Start the block with one of: version:, profile:, b-pod:, files:.",
	},
	CodeInvalidSyntax: {
		Summary:     "Block is not allowed here",
		Explanation: "version: and profile: blocks may only appear in the entry file index.bui.",
		Fix:         "Move the block into index.bui, or remove it from the included file.",
	},
	CodeInvalidVersion: {
		Summary:     "Unsupported version",
		Explanation: "The compiler only understands documents declaring version \"1.0.0\".",
		Fix:         "Declare version: \"1.0.0\".",
	},
	CodeInvalidProfileJSON: {
		Summary:     "Profile payload is not valid JSON",
		Explanation: "The profile: keyword must be followed by a JSON object with double-quoted keys.",
		Fix:         "Check the payload for missing braces, trailing commas or single quotes.",
	},
	CodeInvalidBPodJSON: {
		Summary:     "Service payload is not valid JSON",
		Explanation: "The b-pod name must be followed by a JSON object with double-quoted keys.",
		Fix:         "Check the payload for missing braces, trailing commas or single quotes.",
	},
	CodeMissingBPodName: {
		Summary:     "Service has no name",
		Explanation: "A b-pod block is declared as b-pod: \"Name\" { ... } and the quoted name must not be blank.",
		Fix:         "Add a non-empty quoted name right after b-pod:.",
	},
	CodeDuplicateBPodName: {
		Summary:     "Duplicate service name",
		Explanation: "Service names must be unique across the whole project, including included files.",
		Fix:         "Rename one of the services.",
	},
	CodeInvalidFilesJSON: {
		Summary:     "files block is not a JSON array of strings",
		Explanation: "The files: keyword must be followed by a JSON array of relative paths, such as [\"extra.bui\"].",
		Fix:         "Write the include list as a JSON array of double-quoted strings.",
	},
	CodeFileNotFound: {
		Summary:     "File not found",
		Explanation: "A referenced file does not exist on disk.",
		Fix:         "Check the path for typos and make sure the file exists.",
	},
	CodeFileTooLarge: {
		Summary:     "File exceeds the size limit",
		Explanation: "Each source file must stay below the configured maximum size.",
		Fix:         "Split the file into smaller included files.",
	},
	CodeTooManyFiles: {
		Summary:     "Too many included files",
		Explanation: "The files: list exceeds the configured maximum number of includes.",
		Fix:         "Reduce the number of included files or raise the limit.",
	},
	CodeInvalidFilePath: {
		Summary:     "Invalid file path",
		Explanation: "Included files must live inside the entry file's directory and use the .bui extension.",
		Fix:         "Use a relative path below the entry directory ending in .bui.",
	},
	CodeFileReadError: {
		Summary:     "File could not be read",
		Explanation: "The file exists but reading it failed.",
		Fix:         "Check file permissions.",
	},
	CodeDuplicateFile: {
		Summary:     "File included more than once",
		Explanation: "The file was already merged; the repeated reference is skipped.",
		Fix:         "Remove the duplicate entry from the files: list.",
	},
	CodeMissingProfileName: {
		Summary:     "Profile has no name",
		Explanation: "The profile name is required and must be a non-empty string.",
		Fix:         "Add a \"name\" field to the profile payload.",
	},
	CodeInvalidProfileField: {
		Summary:     "Profile field has the wrong shape",
		Explanation: "A profile field is present but carries a value of an unexpected type.",
		Fix:         "Check the field against the profile schema.",
	},
	CodeInvalidLogoURL: {
		Summary:     "Logo is not an HTTPS URL",
		Explanation: "The logo must be an absolute https:// URL.",
		Fix:         "Use an https:// URL for the logo.",
	},
	CodeInvalidWebsiteURL: {
		Summary:     "Website is not an HTTPS URL",
		Explanation: "The website must be an absolute https:// URL.",
		Fix:         "Use an https:// URL for the website.",
	},
	CodeDescriptionTooLong: {
		Summary:     "Description is too long",
		Explanation: "Descriptions are capped at 500 characters.",
		Fix:         "Shorten the description.",
	},
	CodeMissingLogo: {
		Summary:     "Profile has no logo",
		Explanation: "Without a logo the default placeholder image is used.",
		Fix:         "Add a \"logo\" field with an https:// image URL.",
	},
	CodeMissingDescription: {
		Summary:     "Profile has no description",
		Explanation: "A short description helps users understand the publisher.",
		Fix:         "Add a \"description\" field.",
	},
	CodeMissingWebsite: {
		Summary:     "Profile has no website",
		Explanation: "A website link lets users learn more about the publisher.",
		Fix:         "Add a \"website\" field with an https:// URL.",
	},
	CodeUnknownField: {
		Summary:     "Unknown field",
		Explanation: "The field is not part of the schema and will be ignored.",
		Fix:         "Remove the field or fix its spelling.",
	},
	CodeMissingBPodAccepts: {
		Summary:     "Service accepts no file types",
		Explanation: "The accepts list is required and must name at least one file extension.",
		Fix:         "Add an \"accepts\" array such as [\"txt\", \"pdf\"].",
	},
	CodeInvalidFileExtension: {
		Summary:     "Invalid accepted extension",
		Explanation: "Accepted extensions must be lowercase alphanumeric, without a leading dot.",
		Fix:         "Write extensions like \"txt\" or \"mp4\".",
	},
	CodeInvalidInputType: {
		Summary:     "Unknown input type",
		Explanation: "Input types are limited to text, textarea, number, checkbox, radio, dropdown, toggle and hidden.",
		Fix:         "Pick one of the supported input types.",
	},
	CodeMissingInputOptions: {
		Summary:     "Input needs options",
		Explanation: "radio and dropdown inputs must carry a non-empty options list.",
		Fix:         "Add an \"options\" array to the input.",
	},
	CodeInvalidValidationRange: {
		Summary:     "Validation bounds are inverted",
		Explanation: "The validation min must not exceed the validation max.",
		Fix:         "Swap or correct the min/max values.",
	},
	CodeMissingSubmitLabel: {
		Summary:     "Submit button has no label",
		Explanation: "The submit label is required and must be a non-empty string.",
		Fix:         "Add a \"label\" field to the submit block.",
	},
	CodeInvalidAPIURL: {
		Summary:     "API URL is not HTTPS",
		Explanation: "The api url must be an absolute https:// URL.",
		Fix:         "Use an https:// URL for the api endpoint.",
	},
	CodeInvalidHTTPMethod: {
		Summary:     "Unsupported HTTP method",
		Explanation: "The api method must be GET or POST.",
		Fix:         "Set \"method\" to \"GET\" or \"POST\".",
	},
	CodeInvalidResponseType: {
		Summary:     "Unsupported response type",
		Explanation: "The api responseType must be \"file\" or \"json\".",
		Fix:         "Set \"responseType\" to \"file\" or \"json\".",
	},
	CodeMissingFileParams: {
		Summary:     "API declares no file parameters",
		Explanation: "fileParams is required and must name at least one upload parameter.",
		Fix:         "Add a \"fileParams\" array such as [\"file\"].",
	},
	CodeMissingWebhookURL: {
		Summary:     "Body template never references {webhook_url}",
		Explanation: "The body template must pass the webhook URL to the remote API so results can be delivered.",
		Fix:         "Reference {webhook_url} in one of the bodyTemplate values.",
	},
	CodeMissingFileParamReference: {
		Summary:     "Body template misses a file parameter",
		Explanation: "Every declared file parameter must be referenced as {param} in the body template.",
		Fix:         "Reference each fileParams entry in the bodyTemplate values.",
	},
	CodeBodyTemplateOnGet: {
		Summary:     "GET request cannot carry a body template",
		Explanation: "GET requests have no body, so a bodyTemplate is not allowed.",
		Fix:         "Switch the method to POST or remove the bodyTemplate.",
	},
	CodeInvalidRetries: {
		Summary:     "Retry count out of range",
		Explanation: "retries must be a whole number between 0 and 5.",
		Fix:         "Set retries to a value between 0 and 5.",
	},
	CodeInvalidTimeout: {
		Summary:     "Invalid timeout",
		Explanation: "timeout must be a positive number of milliseconds.",
		Fix:         "Set timeout to a positive number.",
	},
	CodeInvalidServiceField: {
		Summary:     "Service field has the wrong shape",
		Explanation: "A service field is present but carries a value of an unexpected type.",
		Fix:         "Check the field against the service schema.",
	},
	CodeMissingServiceDescription: {
		Summary:     "Service has no description",
		Explanation: "A short description helps users pick the right service.",
		Fix:         "Add a \"description\" field.",
	},
	CodeMissingTags: {
		Summary:     "Service has no tags",
		Explanation: "Tags improve discoverability in catalogs.",
		Fix:         "Add a \"tags\" array.",
	},
	CodeMissingHeaders: {
		Summary:     "API declares no headers",
		Explanation: "Most remote APIs need at least an authorization or content-type header.",
		Fix:         "Add a \"headers\" object if the API requires any.",
	},
	CodeMissingTimeout: {
		Summary:     "API declares no timeout",
		Explanation: "Without an explicit timeout the caller falls back to its default.",
		Fix:         "Add a \"timeout\" in milliseconds.",
	},
	CodeInternalError: {
		Summary:     "Internal compiler error",
		Explanation: "The compiler hit an unexpected condition while processing the project.",
		Fix:         "Please report this with the input that triggered it.",
	},
	CodeProbeFailed: {
		Summary:     "URL did not respond",
		Explanation: "A best-effort reachability check of an external URL failed.",
		Fix:         "Verify the URL is correct and publicly reachable.",
	},
}

var unknownMessages = Messages{
	Summary:     "Unknown problem",
	Explanation: "The compiler reported a code it has no description for.",
	Fix:         "Please report this so the description catalog can be extended.",
}

// Describe returns the message triple for a code. Unknown codes get a
// generic triple rather than an error.
func Describe(code Code) Messages {
	if m, ok := catalog[code]; ok {
		return m
	}
	return unknownMessages
}
