// # internal/resolver/mappings.go
package resolver

// mapping is a static import-name -> distribution-name resolution, with an
// optional set of extras the distribution is conventionally installed
// with (e.g. "jose" -> "python-jose[cryptography]").
type mapping struct {
	distribution string
	extras       []string
}

// commonMappings is the static import-name -> distribution-name table for
// cases where the two diverge (e.g. "PIL" imports but "Pillow" ships it).
var commonMappings = map[string]mapping{
	"sklearn":           {distribution: "scikit-learn"},
	"PIL":               {distribution: "Pillow"},
	"cv2":               {distribution: "opencv-python"},
	"yaml":              {distribution: "PyYAML"},
	"bs4":               {distribution: "beautifulsoup4"},
	"jose":              {distribution: "python-jose", extras: []string{"cryptography"}},
	"barcode":           {distribution: "python-barcode"},
	"pydantic_settings": {distribution: "pydantic-settings"},
	"mysqldb":           {distribution: "mysqlclient"},
	"MySQLdb":           {distribution: "mysqlclient"},
	"dotenv":            {distribution: "python-dotenv"},
	"dateutil":          {distribution: "python-dateutil"},
	"psycopg2":          {distribution: "psycopg2-binary"},
	"tls_client":        {distribution: "tls-client"},
	"telegram":          {distribution: "python-telegram-bot"},
	"mysql":             {distribution: "pymysql"},
	"qrcode":            {distribution: "qrcode"},
	"pipecat":           {distribution: "pipecat-ai"},
	"serial":            {distribution: "pyserial"},
	"jwt":               {distribution: "PyJWT"},
	"dns":               {distribution: "dnspython"},
	"websocket":         {distribution: "websocket-client"},
	"pkg_resources":     {distribution: "setuptools"},
	"attr":              {distribution: "attrs"},
	"attrs":             {distribution: "attrs"},
	"gi":                {distribution: "PyGObject"},
	"Crypto":            {distribution: "pycryptodome"},
	"Cryptodome":        {distribution: "pycryptodome"},
	"wx":                {distribution: "wxPython"},
	"magic":             {distribution: "python-magic"},
	"usb":               {distribution: "pyusb"},
	"socks":             {distribution: "PySocks"},
	"bson":              {distribution: "pymongo"},
	"kafka":             {distribution: "kafka-python"},
	"zmq":               {distribution: "pyzmq"},
	"nacl":              {distribution: "PyNaCl"},
	"skimage":           {distribution: "scikit-image"},
	"docx":              {distribution: "python-docx"},
	"pptx":              {distribution: "python-pptx"},
	"slugify":           {distribution: "python-slugify"},
	"decouple":          {distribution: "python-decouple"},
	"colorlog":          {distribution: "colorlog"},
	"engineio":          {distribution: "python-engineio"},
	"socketio":          {distribution: "python-socketio"},
	"git":               {distribution: "GitPython"},
	"ldap":              {distribution: "python-ldap"},
	"multipart":         {distribution: "python-multipart"},
	"lz4":               {distribution: "lz4"},
	"snappy":            {distribution: "python-snappy"},
	"geopy":             {distribution: "geopy"},
	"rtree":             {distribution: "Rtree"},
	"OpenSSL":           {distribution: "pyopenssl"},
	"Xlib":              {distribution: "python-xlib"},
	"win32api":          {distribution: "pywin32"},
	"win32con":          {distribution: "pywin32"},
	"win32com":          {distribution: "pywin32"},
	"pywintypes":        {distribution: "pywin32"},
	"gflags":            {distribution: "python-gflags"},
	"setuptools_scm":    {distribution: "setuptools-scm"},
	"nmap":              {distribution: "python-nmap"},
	"editdistance":      {distribution: "editdistance"},
	"frontmatter":       {distribution: "python-frontmatter"},
	"pysnooper":         {distribution: "PySnooper"},
	"fitz":              {distribution: "PyMuPDF"},
	"Levenshtein":       {distribution: "python-Levenshtein"},
	"markdown_it":       {distribution: "markdown-it-py"},
	"jwcrypto":          {distribution: "jwcrypto"},
	"pyaudio":           {distribution: "PyAudio"},
	"usbserial":         {distribution: "pyserial"},
}
